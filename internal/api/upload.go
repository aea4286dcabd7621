package api

import (
	"io"
	"net/http"
)

// maxUploadSize caps image uploads at 5MB, matching the media host limit
// the frontend expects.
const maxUploadSize = 5 << 20

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Uploaded file is too large or malformed")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error uploading image")
		return
	}

	result, err := h.uploader.Upload(r.Context(), data, header.Filename)
	if err != nil {
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("image upload failed")
		respondError(w, http.StatusInternalServerError, "Error uploading image")
		return
	}
	respondData(w, http.StatusOK, "Image uploaded successfully", map[string]string{
		"url":       result.SecureURL,
		"public_id": result.PublicID,
	})
}
