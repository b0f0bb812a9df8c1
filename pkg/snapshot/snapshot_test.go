package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// fakeS3 keeps objects in memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	fail    error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[k] = data
	f.types[k] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir, err := NewDirStore(filepath.Join(t.TempDir(), "snaps"))
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}
	db, err := NewBoltStore(filepath.Join(t.TempDir(), "snaps.db"))
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Store{
		"dir":  dir,
		"bolt": db,
		"s3":   NewS3Store(newFakeS3(), "bucket", "vtree/"),
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}
			if err := s.Put(ctx, Key(1), []byte("<p>1</p>")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Put(ctx, Key(1), []byte("<p>2</p>")); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			got, err := s.Get(ctx, Key(1))
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != "<p>2</p>" {
				t.Errorf("Get = %q, want %q", got, "<p>2</p>")
			}
			for _, key := range []string{"", "..", "a/b", `a\b`} {
				if err := s.Put(ctx, key, nil); !errors.Is(err, ErrInvalidKey) {
					t.Errorf("Put(%q) error = %v, want ErrInvalidKey", key, err)
				}
			}
		})
	}
}

func TestKey(t *testing.T) {
	if got := Key(42); got != "cycle-000042.html" {
		t.Errorf("Key(42) = %q", got)
	}
}

func TestBoltKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "k.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	for _, seq := range []uint64{3, 1, 2} {
		if err := s.Put(ctx, Key(seq), []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{Key(1), Key(2), Key(3)}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestS3StorePrefixAndContentType(t *testing.T) {
	fake := newFakeS3()
	s := NewS3Store(fake, "b", "pre/")
	if err := s.Put(context.Background(), "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if got := string(fake.objects["b/pre/k"]); got != "v" {
		t.Errorf("object = %q", got)
	}
	if got := fake.types["b/pre/k"]; got != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", got)
	}

	fake.fail = errors.New("denied")
	if err := s.Put(context.Background(), "k", nil); err == nil {
		t.Error("Put with failing client: want error")
	}
}

func TestOpen(t *testing.T) {
	s, closeFn, err := Open(Config{Backend: BackendNone})
	if err != nil || s != nil {
		t.Fatalf("Open(none) = %v, %v", s, err)
	}
	closeFn()

	s, closeFn, err = Open(Config{Backend: BackendBolt, BoltPath: filepath.Join(t.TempDir(), "o.db")})
	if err != nil {
		t.Fatalf("Open(bolt): %v", err)
	}
	if _, ok := s.(*BoltStore); !ok {
		t.Errorf("Open(bolt) = %T", s)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}

	if _, _, err := Open(Config{Backend: BackendS3}); err == nil {
		t.Error("Open(s3) without bucket: want error")
	}
	if _, _, err := Open(Config{Backend: "ftp"}); err == nil {
		t.Error("Open(ftp): want error")
	}
}

func increment(n int, _ ...any) int { return n + 1 }

func breakView(n int, _ ...any) int { return -1 }

func counter(n int, _ *app.Dispatcher[int]) vdom.Node {
	if n < 0 {
		return vdom.H(vdom.TagDiv, nil, vdom.H("blink", nil))
	}
	return vdom.H(vdom.TagDiv, nil, n)
}

func TestMiddleware(t *testing.T) {
	ctx := context.Background()
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := dom.New()
	a := app.New[int, *dom.Node](doc, doc.Root(), counter, 0,
		app.WithLogger(logger),
		app.WithMiddleware(Middleware(store, doc, logger)),
	)
	if err := a.Mount(ctx); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := a.Dispatch(ctx, increment); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := a.Dispatch(ctx, breakView); err == nil {
		t.Fatal("Dispatch(breakView): want error")
	}

	for seq, want := range map[uint64]string{1: "<div>0</div>", 2: "<div>1</div>"} {
		got, err := store.Get(ctx, Key(seq))
		if err != nil {
			t.Fatalf("Get(%d): %v", seq, err)
		}
		if string(got) != want {
			t.Errorf("snapshot %d = %q, want %q", seq, got, want)
		}
	}
	if _, err := store.Get(ctx, Key(3)); !errors.Is(err, ErrNotFound) {
		t.Errorf("failed cycle stored a snapshot: %v", err)
	}
}

func TestMiddlewareStoreFailureKeepsCycle(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	fake.fail = errors.New("offline")
	doc := dom.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := app.New[int, *dom.Node](doc, doc.Root(), counter, 0,
		app.WithLogger(logger),
		app.WithMiddleware(Middleware(NewS3Store(fake, "b", ""), doc, logger)),
	)
	if err := a.Mount(ctx); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := a.Dispatch(ctx, increment); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if a.State() != 1 || a.Seq() != 2 {
		t.Errorf("state = %d seq = %d, want 1 2", a.State(), a.Seq())
	}
}
