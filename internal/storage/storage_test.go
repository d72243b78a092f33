package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	key := NewKey("My Gift QR.PNG")
	assert.True(t, strings.HasPrefix(key, "photos/"))
	assert.True(t, strings.HasSuffix(key, "-my-gift-qr.png"), key)
	assert.True(t, validKey(key))

	assert.NotEqual(t, NewKey("a.jpg"), NewKey("a.jpg"))

	bare := NewKey("")
	assert.True(t, strings.HasPrefix(bare, "photos/"))
	assert.False(t, strings.Contains(bare, "."))

	traversal := NewKey("../../etc/passwd")
	assert.True(t, validKey(traversal), traversal)
}

func TestValidKey(t *testing.T) {
	for _, key := range []string{"", "/photos/a", "../a", "photos/../../a", "photos\\a", "photos//a"} {
		assert.False(t, validKey(key), key)
	}
	assert.True(t, validKey("photos/a.jpg"))
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	key, err := store.Save(ctx, "qr.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	url, err := store.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/"+key, url)

	_, err = store.URL(ctx, "photos/missing.jpg")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = store.URL(ctx, "../secret")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestLocalStorageWithoutBaseURL(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	key, err := store.Save(ctx, "qr.jpg", "", strings.NewReader("x"))
	require.NoError(t, err)

	url, err := store.URL(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func testS3Client() *s3.Client {
	return s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: aws.String("https://account.r2.cloudflarestorage.com"),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("key", "secret", ""),
	})
}

func TestS3URLWithBaseURL(t *testing.T) {
	store := newS3Storage(testS3Client(), "santa", "https://cdn.example.com/")

	url, err := store.URL(context.Background(), "photos/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/a.jpg", url)
}

func TestS3URLPresigned(t *testing.T) {
	store := newS3Storage(testS3Client(), "santa", "")

	url, err := store.URL(context.Background(), "photos/a.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://account.r2.cloudflarestorage.com/santa/photos/a.jpg?"), url)
	assert.Contains(t, url, "X-Amz-Signature=")

	_, err = store.URL(context.Background(), "/etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
