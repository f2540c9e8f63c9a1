package chart

// Blues9 is the nine-step sequential blue scheme lightest first.
var Blues9 = []string{
	"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6",
	"#4292c6", "#2171b5", "#08519c", "#08306b",
}

// Set2 is the eight-colour qualitative scheme used for categorical dots.
var Set2 = []string{
	"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3",
	"#a6d854", "#ffd92f", "#e5c494", "#b3b3b3",
}

// TemperatureColors runs from cold blue to hot red across nine buckets.
var TemperatureColors = []string{
	"#4475B4", "#75ACD0", "#AAD9E9", "#E0F2F8", "#FFFFBF",
	"#FEE08F", "#FCAD61", "#F36D43", "#D73026",
}
