package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"github.com/appdeck/userbase/modules/appuser/csvimport"
	"github.com/appdeck/userbase/modules/appuser/domain/aggregates/appuser"
	"github.com/appdeck/userbase/modules/appuser/presentation/mappers"
	"github.com/appdeck/userbase/modules/appuser/presentation/viewmodels"
	"github.com/appdeck/userbase/modules/appuser/services"
	"github.com/appdeck/userbase/pkg/application"
	"github.com/appdeck/userbase/pkg/httpapi"
	"github.com/appdeck/userbase/pkg/middleware"
)

const (
	csvContentType       = "text/csv"
	plainTextContentType = "text/plain"

	defaultMaxUploadSize int64 = 32 << 20
)

type AppUserAPIController struct {
	app           application.Application
	appUsers      *services.AppUserService
	reader        *csvimport.Reader
	basePath      string
	maxUploadSize int64
}

func NewAppUserAPIController(app application.Application, maxUploadSize int64) application.Controller {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &AppUserAPIController{
		app:           app,
		appUsers:      app.Service(services.AppUserService{}).(*services.AppUserService),
		reader:        csvimport.NewReader(app.Logger()),
		basePath:      "/app-users",
		maxUploadSize: maxUploadSize,
	}
}

func (c *AppUserAPIController) Key() string {
	return c.basePath
}

func (c *AppUserAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Upload).Methods(http.MethodPost)
	router.HandleFunc("", c.FirstPage).Methods(http.MethodGet)
	router.HandleFunc("", c.DeleteAll).Methods(http.MethodDelete)
	router.HandleFunc("/by-page", c.Page).Methods(http.MethodGet)
	router.HandleFunc("/by-last-name", c.ByLastName).Methods(http.MethodGet)
	router.HandleFunc("/oldest", c.Oldest).Methods(http.MethodGet)
	router.HandleFunc("/count", c.Count).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.ByID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.DeleteByID).Methods(http.MethodDelete)
}

// Upload ingests a multipart CSV upload in tolerant mode: incorrect rows are
// dropped, an upload with no correct rows at all is rejected.
func (c *AppUserAPIController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadSize)
	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		_ = httpapi.WriteError(w, r, http.StatusBadRequest, "Invalid multipart form data")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, r, http.StatusBadRequest, "File cannot be null")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}

	// Semicolon-delimited files sniff as plain text, comma-delimited as text/csv.
	if mime := mimetype.Detect(data); !mime.Is(csvContentType) && !mime.Is(plainTextContentType) {
		_ = httpapi.WriteError(w, r, http.StatusBadRequest, "Only text/csv files are supported")
		return
	}

	records, err := c.reader.Parse(data)
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	if len(records) == 0 {
		_ = httpapi.WriteError(w, r, http.StatusBadRequest, "File contains no correct app user records")
		return
	}

	saved, err := c.appUsers.AddAppUsers(r.Context(), records)
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, mappers.AppUsersToViewModels(saved))
}

func (c *AppUserAPIController) FirstPage(w http.ResponseWriter, r *http.Request) {
	page, err := c.appUsers.GetFirstPageOfAppUsers(r.Context())
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.PageToViewModel(page))
}

func (c *AppUserAPIController) Page(w http.ResponseWriter, r *http.Request) {
	pageNumber, err := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	if err != nil {
		_ = httpapi.WriteError(w, r, http.StatusBadRequest, "Page number cannot be null and has to be greater or equal 0")
		return
	}

	page, err := c.appUsers.GetAppUsers(r.Context(), pageNumber)
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.PageToViewModel(page))
}

func (c *AppUserAPIController) ByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		_ = httpapi.WriteError(w, r, http.StatusBadRequest, "Id cannot be null and has to be greater than 0")
		return
	}

	user, err := c.appUsers.GetAppUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, appuser.ErrNotFound) {
			_ = httpapi.WriteError(w, r, http.StatusNotFound, "App user not found")
			return
		}
		c.writeFailure(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AppUserToViewModel(user))
}

func (c *AppUserAPIController) ByLastName(w http.ResponseWriter, r *http.Request) {
	users, err := c.appUsers.GetAppUsersByLastName(r.Context(), r.URL.Query().Get("lastName"))
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AppUsersToViewModels(users))
}

// Oldest responds with a JSON null body when no record carries a phone
// number; an empty record set is not an error for this endpoint.
func (c *AppUserAPIController) Oldest(w http.ResponseWriter, r *http.Request) {
	user, err := c.appUsers.GetOldestAppUser(r.Context())
	if err != nil {
		if errors.Is(err, appuser.ErrNotFound) {
			_ = httpapi.WriteJSON(w, http.StatusOK, (*viewmodels.AppUser)(nil))
			return
		}
		c.writeFailure(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.AppUserToViewModel(user))
}

func (c *AppUserAPIController) Count(w http.ResponseWriter, r *http.Request) {
	count, err := c.appUsers.Count(r.Context())
	if err != nil {
		c.writeFailure(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, count)
}

func (c *AppUserAPIController) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		_ = httpapi.WriteError(w, r, http.StatusBadRequest, "Id cannot be null and has to be greater than 0")
		return
	}

	if err := c.appUsers.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, appuser.ErrNotFound) {
			_ = httpapi.WriteError(w, r, http.StatusNotFound, "App user not found")
			return
		}
		c.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AppUserAPIController) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := c.appUsers.DeleteAll(r.Context()); err != nil {
		c.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AppUserAPIController) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	middleware.UseLogger(r.Context()).WithError(err).Error("request failed")
	_ = httpapi.WriteError(w, r, httpapi.StatusFor(err), httpapi.PublicMessage(err))
}
