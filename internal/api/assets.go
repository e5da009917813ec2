package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// assetDir is the subdirectory of the content root holding article assets.
const assetDir = "assets"

// AssetHandler serves static article assets (images, downloads) from the
// local content directory. It is read-only.
type AssetHandler struct {
	contentRoot string
}

// NewAssetHandler creates a handler rooted at the content directory.
func NewAssetHandler(contentRoot string) *AssetHandler {
	return &AssetHandler{contentRoot: contentRoot}
}

func (h *AssetHandler) assetPath() string {
	return filepath.Join(h.contentRoot, assetDir)
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the absolute path under the assets dir.
func (h *AssetHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.assetPath(), cleaned)
	// Double-check the resolved path is under the assets dir.
	if !strings.HasPrefix(abs, h.assetPath()+string(os.PathSeparator)) && abs != h.assetPath() {
		return "", fmt.Errorf("path escapes assets directory")
	}
	return abs, nil
}

// ServeFile handles GET /api/assets/{filename}.
//
//	@Summary		Serve a static article asset
//	@Tags			assets
//	@Param			filename	path	string	true	"Asset filename"
//	@Success		200	"Asset content"
//	@Failure		404	{object}	errResponse
//	@Router			/assets/{filename} [get]
func (h *AssetHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	http.ServeFile(w, r, abs)
}
