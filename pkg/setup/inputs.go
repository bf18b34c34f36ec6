package setup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/papercomputeco/dify/pkg/client"
)

// Inputs merges --input key=value pairs over a JSON object given with
// --inputs. Pair values are sent as strings.
func Inputs(pairs map[string]string, raw string) (map[string]any, error) {
	inputs := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
			return nil, fmt.Errorf("parsing --inputs: %w", err)
		}
	}
	for k, v := range pairs {
		inputs[k] = v
	}
	return inputs, nil
}

var fileTypes = map[string]string{
	".jpg": "image", ".jpeg": "image", ".png": "image", ".gif": "image", ".webp": "image", ".svg": "image",
	".mp3": "audio", ".m4a": "audio", ".wav": "audio", ".amr": "audio", ".mpga": "audio",
	".mp4": "video", ".mov": "video", ".mpeg": "video", ".webm": "video",
	".txt": "document", ".md": "document", ".markdown": "document", ".pdf": "document",
	".html": "document", ".xlsx": "document", ".xls": "document", ".docx": "document",
	".csv": "document", ".eml": "document", ".msg": "document", ".pptx": "document",
	".ppt": "document", ".xml": "document", ".epub": "document",
}

// FileType returns the platform file type for name, judged by extension.
func FileType(name string) string {
	if t, ok := fileTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "custom"
}

// AttachFiles turns --file arguments into message attachments. URLs are sent
// by reference; local paths are uploaded first.
func AttachFiles(ctx context.Context, c *client.Client, paths []string, user string) ([]client.FileInfo, error) {
	files := make([]client.FileInfo, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			files = append(files, client.FileInfo{
				Type:           FileType(p),
				TransferMethod: client.TransferRemoteURL,
				URL:            p,
			})
			continue
		}

		uploaded, err := upload(ctx, c, p, user)
		if err != nil {
			return nil, err
		}
		files = append(files, client.FileInfo{
			Type:           FileType(p),
			TransferMethod: client.TransferLocalFile,
			UploadFileID:   uploaded.ID,
		})
	}
	return files, nil
}

func upload(ctx context.Context, c *client.Client, path, user string) (*client.UploadedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	uploaded, err := c.UploadFile(ctx, client.Upload{Name: filepath.Base(path), Reader: f}, user)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", path, err)
	}
	return uploaded, nil
}
