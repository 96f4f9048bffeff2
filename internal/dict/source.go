package dict

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

// AssetName is the file name of the bundled word list.
const AssetName = "words.json"

//go:embed assets/words.json
var bundled embed.FS

// Source produces the full, unsorted word list.
type Source interface {
	Words(ctx context.Context) ([]models.Word, error)
}

// AssetSource reads a JSON array of words from a file in an [fs.FS].
type AssetSource struct {
	FS   fs.FS
	Name string
}

var _ Source = AssetSource{}

// Bundled returns the source for the words.json asset compiled into the binary.
func Bundled() AssetSource {
	sub, err := fs.Sub(bundled, "assets")
	if err != nil {
		panic(fmt.Sprintf("bundled assets missing: %v", err))
	}
	return AssetSource{FS: sub, Name: AssetName}
}

// FileSource returns a source reading the word list at path.
func FileSource(path string) AssetSource {
	return AssetSource{FS: os.DirFS(filepath.Dir(path)), Name: filepath.Base(path)}
}

// Words reads and parses the asset. Read failures wrap [shared.ErrAssetUnreadable], malformed content wraps
// [shared.ErrAssetInvalid].
func (s AssetSource) Words(ctx context.Context) ([]models.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := fs.ReadFile(s.FS, s.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrAssetUnreadable, s.Name, err)
	}

	return Parse(s.Name, content)
}

// Parse decodes a words.json document. name only labels errors.
func Parse(name string, content []byte) ([]models.Word, error) {
	var words []models.Word
	if err := json.Unmarshal(content, &words); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrAssetInvalid, name, err)
	}

	for _, w := range words {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", shared.ErrAssetInvalid, name, err)
		}
	}
	return words, nil
}
