package shipments

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/indoha-commits/cargo-portal/internal/auth"
	"github.com/indoha-commits/cargo-portal/internal/freight"
	"github.com/indoha-commits/cargo-portal/internal/shared"
	"github.com/indoha-commits/cargo-portal/internal/view"
)

// documentTypeOption feeds the upload form's type selector.
type documentTypeOption struct {
	Value string
	Label string
}

var documentTypeOptions = []documentTypeOption{
	{freight.DocBillOfLading, "Bill of lading"},
	{freight.DocCommercialInvoice, "Commercial invoice"},
	{freight.DocPackingList, "Packing list"},
	{freight.DocImportPermit, "Import permit"},
	{freight.DocImportLicense, "Import license"},
	{freight.DocTypeApproval, "Type approval"},
}

// maxUploadBytes caps multipart parsing; object storage receives the file
// directly so this only bounds the portal's buffer.
const maxUploadBytes = 64 << 20

// Handler serves the shipment list and detail screens.
type Handler struct {
	logger    *slog.Logger
	client    *freight.Client
	templates *view.Engine
	sessions  *shared.SessionManager
	csrf      *shared.CSRFManager
	loginURL  string
	validator *validator.Validate
	now       func() time.Time
}

// NewHandler constructs the shipments handler.
func NewHandler(logger *slog.Logger, client *freight.Client, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager, loginURL string) *Handler {
	return &Handler{
		logger:    logger,
		client:    client,
		templates: templates,
		sessions:  sessions,
		csrf:      csrf,
		loginURL:  loginURL,
		validator: validator.New(),
		now:       time.Now,
	}
}

// MountRoutes registers the authenticated portal routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/shipments", h.showList)
	r.Get("/shipments/{cargoID}", h.showDetail)
	r.Post("/shipments/{cargoID}/documents", h.handleUpload)
	r.Post("/approvals/{approvalID}/approve", h.handleApprove)
	r.Post("/approvals/{approvalID}/reject", h.handleReject)
	r.Get("/documents/{documentID}/file", h.openDocument)
	r.Get("/approvals/{approvalID}/file", h.openApprovalFile)
}

type listPageData struct {
	Rows  []Row
	Pager shared.Pagination
}

// PrevPage is the page number for the pager's back link.
func (d listPageData) PrevPage() int { return d.Pager.Page - 1 }

// NextPage is the page number for the pager's forward link.
func (d listPageData) NextPage() int { return d.Pager.Page + 1 }

// listPageSize keeps the shipment table scannable; the backend returns the
// full set and the portal pages it locally.
const listPageSize = 20

type detailPageData struct {
	VM            DetailVM
	DocumentTypes []documentTypeOption
	UploadError   string
}

func (h *Handler) showList(w http.ResponseWriter, r *http.Request) {
	token := h.token(r)
	summaries, err := h.client.ListShipments(r.Context(), token)
	if err != nil {
		h.fail(w, r, "list shipments", err)
		return
	}
	rows := NewRows(summaries, h.now())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pager := shared.NewPagination(page, listPageSize, len(rows))
	start := (pager.Page - 1) * pager.PerPage
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pager.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	h.render(w, r, "pages/shipments.html", "Shipments", listPageData{Rows: rows[start:end], Pager: pager})
}

func (h *Handler) showDetail(w http.ResponseWriter, r *http.Request) {
	h.renderDetail(w, r, chi.URLParam(r, "cargoID"), "")
}

// renderDetail fetches the detail bundle and approvals, then renders the
// page. uploadError, when set, is shown inline in the documents card so a
// failed upload keeps its context for retry.
func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, cargoID, uploadError string) {
	token := h.token(r)
	detail, err := h.client.GetCargo(r.Context(), token, cargoID)
	if err != nil {
		h.fail(w, r, "get cargo", err)
		return
	}
	approvals, err := h.client.ListApprovals(r.Context(), token, cargoID)
	if err != nil {
		h.fail(w, r, "list approvals", err)
		return
	}
	data := detailPageData{
		VM:            NewDetail(detail, approvals, h.now()),
		DocumentTypes: documentTypeOptions,
		UploadError:   uploadError,
	}
	h.render(w, r, "pages/shipment_detail.html", data.VM.Route, data)
}

type uploadForm struct {
	DocumentType string `validate:"required"`
	FileName     string `validate:"required"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	cargoID := chi.URLParam(r, "cargoID")
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderDetail(w, r, cargoID, "The upload could not be read: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderDetail(w, r, cargoID, "Please choose a file to upload.")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	form := uploadForm{
		DocumentType: r.PostFormValue("document_type"),
		FileName:     header.Filename,
	}
	if err := h.validator.Struct(form); err != nil {
		h.renderDetail(w, r, cargoID, "Please pick a document type and a file.")
		return
	}

	token := h.token(r)
	contentType := header.Header.Get("Content-Type")
	path, err := h.client.UploadDocument(r.Context(), token, cargoID, form.DocumentType, form.FileName, contentType, file)
	if err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			auth.RedirectToLogin(w, r, h.sessions, h.loginURL)
			return
		}
		h.logger.Error("upload document", slog.Any("error", err))
		h.renderDetail(w, r, cargoID, err.Error())
		return
	}
	if _, err := h.client.InsertDocument(r.Context(), token, cargoID, form.DocumentType, path); err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			auth.RedirectToLogin(w, r, h.sessions, h.loginURL)
			return
		}
		h.logger.Error("register document", slog.Any("error", err))
		h.renderDetail(w, r, cargoID, err.Error())
		return
	}

	h.flash(r, "success", "Document uploaded. It will show as Uploaded once the backend has processed it.")
	http.Redirect(w, r, "/shipments/"+cargoID, http.StatusSeeOther)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "approvalID")
	cargoID := r.PostFormValue("cargo_id")
	if err := h.client.ApproveApproval(r.Context(), h.token(r), approvalID); err != nil {
		h.failAction(w, r, cargoID, "approve", err)
		return
	}
	h.flash(r, "success", "Approved.")
	h.redirectBack(w, r, cargoID)
}

type rejectForm struct {
	Reason string `validate:"required,min=3"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "approvalID")
	cargoID := r.PostFormValue("cargo_id")
	form := rejectForm{Reason: r.PostFormValue("rejection_reason")}
	if err := h.validator.Struct(form); err != nil {
		h.flash(r, "error", "A rejection reason is required.")
		h.redirectBack(w, r, cargoID)
		return
	}
	if err := h.client.RejectApproval(r.Context(), h.token(r), approvalID, form.Reason); err != nil {
		h.failAction(w, r, cargoID, "reject", err)
		return
	}
	h.flash(r, "success", "Rejected. Our team will follow up with a revised version.")
	h.redirectBack(w, r, cargoID)
}

func (h *Handler) openDocument(w http.ResponseWriter, r *http.Request) {
	link, err := h.client.DocumentSignedURL(r.Context(), h.token(r), chi.URLParam(r, "documentID"))
	if err != nil {
		h.fail(w, r, "document signed url", err)
		return
	}
	http.Redirect(w, r, link.URL, http.StatusFound)
}

func (h *Handler) openApprovalFile(w http.ResponseWriter, r *http.Request) {
	link, err := h.client.ApprovalSignedURL(r.Context(), h.token(r), chi.URLParam(r, "approvalID"))
	if err != nil {
		h.fail(w, r, "approval signed url", err)
		return
	}
	http.Redirect(w, r, link.URL, http.StatusFound)
}

func (h *Handler) token(r *http.Request) string {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		return sess.AccessToken()
	}
	return ""
}

func (h *Handler) flash(r *http.Request, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
}

func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, cargoID string) {
	target := "/shipments"
	if cargoID != "" {
		target = "/shipments/" + cargoID
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// fail renders the error page, or redirects to login when the backend told
// us the session is gone.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, shared.ErrSessionExpired) {
		auth.RedirectToLogin(w, r, h.sessions, h.loginURL)
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	h.render(w, r, "pages/error.html", "Error", struct{ Message string }{Message: err.Error()})
}

// failAction flashes the error and returns to the detail page; mutating
// endpoints never swallow backend errors.
func (h *Handler) failAction(w http.ResponseWriter, r *http.Request, cargoID, op string, err error) {
	if errors.Is(err, shared.ErrSessionExpired) {
		auth.RedirectToLogin(w, r, h.sessions, h.loginURL)
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	h.flash(r, "error", err.Error())
	h.redirectBack(w, r, cargoID)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		SignedIn:    sess != nil && sess.AccessToken() != "",
		Data:        data,
	}
	if err := h.templates.Render(w, page, viewData); err != nil {
		h.logger.Error("render "+page, slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// SetNowForTest pins the clock used for SLA hints.
func (h *Handler) SetNowForTest(now func() time.Time) {
	h.now = now
}
