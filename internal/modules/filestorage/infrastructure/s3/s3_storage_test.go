package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewS3Storage_ValidationAndConfig(t *testing.T) {
	_, err := NewS3Storage(context.Background(), S3Config{})
	require.Error(t, err)

	st, err := NewS3Storage(context.Background(), S3Config{
		BucketName: "bucket",
		Region:     "ap-south-1",
		Endpoint:   "localhost:9000",
		AccessKey:  "x",
		SecretKey:  "y",
		UseSSL:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NotNil(t, st.client)
}

func TestS3Storage_UploadFile(t *testing.T) {
	var gotPath, gotType string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	st, err := NewS3Storage(context.Background(), S3Config{
		BucketName: "bucket",
		Region:     "ap-south-1",
		Endpoint:   ts.URL,
		AccessKey:  "x",
		SecretKey:  "y",
	})
	require.NoError(t, err)

	url, err := st.UploadFile(context.Background(), "cutouts/out.png", bytes.NewReader([]byte("png-bytes")), "image/png")
	require.NoError(t, err)
	require.Equal(t, ts.URL+"/bucket/cutouts/out.png", url)
	require.Equal(t, "/bucket/cutouts/out.png", gotPath)
	require.Equal(t, "image/png", gotType)
	require.Contains(t, string(gotBody), "png-bytes")
}

func TestS3Storage_UploadFile_Error(t *testing.T) {
	st, err := NewS3Storage(context.Background(), S3Config{
		BucketName: "bucket", Region: "ap-south-1", Endpoint: "http://127.0.0.1:1", AccessKey: "x", SecretKey: "y",
	})
	require.NoError(t, err)

	_, err = st.UploadFile(context.Background(), "k", bytes.NewBufferString("x"), "text/plain")
	require.Error(t, err)
}

func TestS3Storage_ObjectURL_AndHelpers(t *testing.T) {
	st := &S3Storage{config: S3Config{BucketName: "b", Region: "ap-south-1", Endpoint: "localhost:9000"}}
	require.Equal(t, "http://localhost:9000/b/a/file.png", st.ObjectURL("a/file.png"))

	st = &S3Storage{config: S3Config{BucketName: "b", Region: "ap-south-1", Endpoint: "minio.local", UseSSL: true}}
	require.Equal(t, "https://minio.local/b/x.png", st.ObjectURL("x.png"))

	st = &S3Storage{config: S3Config{BucketName: "b", Region: "ap-south-1"}}
	require.Equal(t, "https://b.s3.ap-south-1.amazonaws.com/f/g.png", st.ObjectURL("f/g.png"))

	require.True(t, hasHTTPPrefix("http://x"))
	require.True(t, hasHTTPPrefix("https://x"))
	require.False(t, hasHTTPPrefix("x"))
}
