package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/domain/interfaces"
	"github.com/m-mizutani/md5calc/pkg/domain/model"
	"github.com/m-mizutani/md5calc/pkg/utils/errs"
)

// uploadField is the multipart field name used by both pickers
const uploadField = "files"

// uploadedFile adapts an uploaded multipart file to model.SourceFile
type uploadedFile struct {
	header *multipart.FileHeader
}

func (f *uploadedFile) Name() string { return f.header.Filename }

func (f *uploadedFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}

// DigestHandler serves the calculator page and the digest API
type DigestHandler struct {
	digestUC        interfaces.DigestUseCase
	page            *pageRenderer
	maxUploadMemory int64
}

// NewDigestHandler creates a new DigestHandler
func NewDigestHandler(digestUC interfaces.DigestUseCase, maxUploadMemory int64) (*DigestHandler, error) {
	page, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	return &DigestHandler{
		digestUC:        digestUC,
		page:            page,
		maxUploadMemory: maxUploadMemory,
	}, nil
}

// ShowPage renders the calculator page without results
func (h *DigestHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, 0, nil)
}

// SubmitPage calculates digests of uploaded files and renders them as a
// table. A failed calculation is logged and the page is rendered without
// results.
func (h *DigestHandler) SubmitPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, cleanup, err := h.parseUpload(r)
	if err != nil {
		errs.Handle(ctx, err)
		h.writePage(w, r, 0, nil)
		return
	}
	defer cleanup()

	batch, err := h.digestUC.CalculateMD5(ctx, files)
	if err != nil {
		errs.Handle(ctx, err)
		h.writePage(w, r, len(files), nil)
		return
	}

	h.writePage(w, r, len(files), batch)
}

// CalculateAPI calculates digests of uploaded files and returns them as JSON
func (h *DigestHandler) CalculateAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, cleanup, err := h.parseUpload(r)
	if err != nil {
		ctxlog.From(ctx).Warn("Invalid upload request", "error", err)
		writeError(w, r, err, http.StatusBadRequest)
		return
	}
	defer cleanup()

	batch, err := h.digestUC.CalculateMD5(ctx, files)
	if err != nil {
		errs.Handle(ctx, err)
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, batch, http.StatusOK)
}

// parseUpload extracts uploaded files in the order the browser sent them.
// cleanup removes temporary files created for large uploads.
func (h *DigestHandler) parseUpload(r *http.Request) ([]model.SourceFile, func(), error) {
	if err := r.ParseMultipartForm(h.maxUploadMemory); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to parse multipart form")
	}

	form := r.MultipartForm
	cleanup := func() {
		if err := form.RemoveAll(); err != nil {
			ctxlog.From(r.Context()).Warn("Failed to remove uploaded files", "error", err)
		}
	}

	headers := form.File[uploadField]
	files := make([]model.SourceFile, len(headers))
	for i, hdr := range headers {
		files[i] = &uploadedFile{header: hdr}
	}

	ctxlog.From(r.Context()).Debug("Received upload", "file_count", len(files))
	return files, cleanup, nil
}

func (h *DigestHandler) writePage(w http.ResponseWriter, r *http.Request, selected int, batch *model.DigestBatch) {
	var buf bytes.Buffer
	if err := h.page.render(&buf, selected, batch); err != nil {
		errs.Handle(r.Context(), err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write page", "error", err)
	}
}
