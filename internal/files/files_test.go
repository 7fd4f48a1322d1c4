package files

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upload собирает настоящий multipart.FileHeader через multipart.Reader
func upload(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photos"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photos"][0]
}

func TestCheckFileType(t *testing.T) {
	assert.True(t, CheckFileType(upload(t, "a.png", "image/png", []byte("x")), "image/"))
	assert.False(t, CheckFileType(upload(t, "a.txt", "text/plain", []byte("x")), "image/"))
}

func TestCheckFileSize(t *testing.T) {
	small := upload(t, "a.png", "image/png", bytes.Repeat([]byte("a"), 100*1024))
	exact := upload(t, "b.png", "image/png", bytes.Repeat([]byte("a"), 500*1024))
	big := upload(t, "c.png", "image/png", bytes.Repeat([]byte("a"), 500*1024+1))

	assert.False(t, CheckFileSize(small, 500))
	assert.False(t, CheckFileSize(exact, 500))
	assert.True(t, CheckFileSize(big, 500))
}

func TestGetFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("wwwroot", "img", "x.png"), GetFilePath("wwwroot", "img", "x.png"))
}

func TestStorage_SaveWritesPrefixedName(t *testing.T) {
	root := t.TempDir()
	s := NewStorage(root, "img")
	s.newID = func() string { return "fixed-id" }

	name, err := s.Save(upload(t, "../evil/photo.png", "image/png", []byte("png-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "fixed-id_photo.png", name)
	data, err := os.ReadFile(filepath.Join(root, "img", name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestStorage_SaveAllAndRemove(t *testing.T) {
	root := t.TempDir()
	s := NewStorage(root, "img")

	names, err := s.SaveAll([]*multipart.FileHeader{
		upload(t, "one.png", "image/png", []byte("1")),
		upload(t, "two.png", "image/png", []byte("2")),
	})
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.True(t, strings.HasSuffix(names[0], "_one.png"))
	assert.NotEqual(t, names[0], names[1])

	s.Remove(append(names, "never-existed.png")...)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
