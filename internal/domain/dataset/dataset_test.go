package dataset_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vizpages/internal/domain/dataset"
)

func TestLoadFile(t *testing.T) {
	Convey("Given a dataset file in a base directory", t, func() {
		dir := t.TempDir()
		So(os.WriteFile(filepath.Join(dir, "data.json"), []byte(`{"data":[["1950-01-01",100]]}`), 0o600), ShouldBeNil)
		l := dataset.NewLoader(dataset.WithBaseDir(dir))
		ctx := context.Background()

		Convey("Then a relative path resolves against the base directory", func() {
			body, err := l.Load(ctx, "data.json")
			So(err, ShouldBeNil)
			So(string(body), ShouldContainSubstring, "1950-01-01")
		})

		Convey("Then a file:// source reads the same file", func() {
			body, err := l.Load(ctx, "file://"+filepath.Join(dir, "data.json"))
			So(err, ShouldBeNil)
			So(len(body), ShouldBeGreaterThan, 0)
		})

		Convey("Then a missing file is a fetch error", func() {
			_, err := l.Load(ctx, "missing.json")
			So(errors.Is(err, dataset.ErrFetch), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})

		Convey("Then a blank source is rejected", func() {
			_, err := l.Load(ctx, "  ")
			So(errors.Is(err, dataset.ErrEmptySource), ShouldBeTrue)
		})
	})
}

func TestLoadHTTP(t *testing.T) {
	Convey("Given an HTTP server with one dataset", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/data.json":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[1,2,3]`))
			case "/slow.json":
				time.Sleep(200 * time.Millisecond)
				_, _ = w.Write([]byte(`[]`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()
		ctx := context.Background()

		Convey("Then a 200 answer returns the body", func() {
			body, err := dataset.NewLoader().Load(ctx, srv.URL+"/data.json")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "[1,2,3]")
		})

		Convey("Then a 404 answer is a status error", func() {
			_, err := dataset.NewLoader().Load(ctx, srv.URL+"/nope.json")
			So(errors.Is(err, dataset.ErrStatus), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "404")
		})

		Convey("Then a timeout aborts a slow answer", func() {
			l := dataset.NewLoader(dataset.WithTimeout(20 * time.Millisecond))
			_, err := l.Load(ctx, srv.URL+"/slow.json")
			So(errors.Is(err, dataset.ErrFetch), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})

		Convey("Then LoadAll keeps source order", func() {
			dir := t.TempDir()
			So(os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"b":true}`), 0o600), ShouldBeNil)
			l := dataset.NewLoader(dataset.WithBaseDir(dir))

			bodies, err := l.LoadAll(ctx, srv.URL+"/data.json", "b.json")
			So(err, ShouldBeNil)
			So(len(bodies), ShouldEqual, 2)
			So(string(bodies[0]), ShouldEqual, "[1,2,3]")
			So(string(bodies[1]), ShouldEqual, `{"b":true}`)
		})

		Convey("Then LoadAll fails as a whole when one source fails", func() {
			bodies, err := dataset.NewLoader().LoadAll(ctx, srv.URL+"/data.json", srv.URL+"/nope.json")
			So(bodies, ShouldBeNil)
			So(errors.Is(err, dataset.ErrStatus), ShouldBeTrue)
		})
	})
}

func TestKind(t *testing.T) {
	Convey("Given source locations", t, func() {
		So(dataset.Kind("https://example.org/a.json"), ShouldEqual, dataset.KindHTTP)
		So(dataset.Kind("HTTP://example.org/a.json"), ShouldEqual, dataset.KindHTTP)
		So(dataset.Kind("data/a.json"), ShouldEqual, dataset.KindFile)
	})
}

func TestDecode(t *testing.T) {
	Convey("Given a body with an envelope", t, func() {
		body := []byte(`{"source":"BEA","data":[["1950-01-01",100.0],["1950-04-01",102.5]]}`)

		Convey("Then the envelope path selects the records", func() {
			var rows [][2]any
			So(dataset.Decode(body, "data", &rows), ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
			So(rows[1][1], ShouldEqual, 102.5)
		})

		Convey("Then an empty path decodes the whole body", func() {
			var doc map[string]any
			So(dataset.Decode(body, "", &doc), ShouldBeNil)
			So(doc["source"], ShouldEqual, "BEA")
		})

		Convey("Then a missing path is reported", func() {
			var v any
			So(errors.Is(dataset.Decode(body, "monthlyVariance", &v), dataset.ErrPathNotFound), ShouldBeTrue)
		})

		Convey("Then a shape mismatch is a decode error", func() {
			var s string
			So(errors.Is(dataset.Decode(body, "data", &s), dataset.ErrDecode), ShouldBeTrue)
		})
	})
}
