package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyl94700/P9-Op-Cl/internal/validation"
)

func uploadFixture(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["image"][0]
}

func TestImageStore_Save(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	t.Run("stores the file under a uuid name keeping the extension", func(t *testing.T) {
		name, err := store.Save(uploadFixture(t, "cover.PNG", []byte("png-bytes")))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".png"))

		data, err := os.ReadFile(filepath.Join(store.Dir(), name))
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("two uploads of the same filename do not collide", func(t *testing.T) {
		a, err := store.Save(uploadFixture(t, "cover.jpg", []byte("a")))
		require.NoError(t, err)
		b, err := store.Save(uploadFixture(t, "cover.jpg", []byte("b")))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("disallowed extension is a validation error", func(t *testing.T) {
		_, err := store.Save(uploadFixture(t, "payload.exe", []byte("nope")))
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "image")
	})

	t.Run("remove tolerates missing files", func(t *testing.T) {
		assert.NoError(t, store.Remove("never-existed.png"))
		assert.NoError(t, store.Remove(""))
	})
}
