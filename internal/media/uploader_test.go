package media

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/freshmart/admin-console/pkg/api"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newUploader(t *testing.T, maxMB int, rt roundTripFunc) *Uploader {
	t.Helper()
	client, err := api.NewClient("http://backend.test", api.WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)
	up, err := NewUploader(client, maxMB)
	require.NoError(t, err)
	return up
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestUpload(t *testing.T) {
	up := newUploader(t, 5, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/admin/upload-image", req.URL.Path)
		require.NoError(t, req.ParseMultipartForm(1<<20))
		file, header, err := req.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "apple.png", header.Filename)
		raw, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(raw))
		return jsonResponse(http.StatusOK, `{"ok":true,"url":"http://backend.test/media/uploads/products/abc.png","path":"/media/uploads/products/abc.png"}`), nil
	})

	result, err := up.Upload(context.Background(), "/tmp/photos/apple.png", 9, strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/uploads/products/abc.png", result.Path)
	assert.Contains(t, result.URL, "abc.png")
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	up := newUploader(t, 5, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for a rejected file")
		return nil, nil
	})

	_, err := up.Upload(context.Background(), "video.mp4", 10, strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = up.Upload(context.Background(), "noext", 10, strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	up := newUploader(t, 1, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for an oversized file")
		return nil, nil
	})

	_, err := up.Upload(context.Background(), "big.jpg", 2<<20, strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestUploadRefusesConcurrentCalls(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	up := newUploader(t, 5, func(req *http.Request) (*http.Response, error) {
		once.Do(func() { close(started) })
		<-release
		return jsonResponse(http.StatusOK, `{"ok":true,"url":"u","path":"p"}`), nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := up.Upload(context.Background(), "a.png", 1, strings.NewReader("x"))
		assert.NoError(t, err)
	}()

	<-started
	_, err := up.Upload(context.Background(), "b.png", 1, strings.NewReader("y"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	close(release)
	wg.Wait()

	// The guard clears once the first upload finishes.
	_, err = up.Upload(context.Background(), "c.png", 1, strings.NewReader("z"))
	assert.NoError(t, err)
}
