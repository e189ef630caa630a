package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/storage"
)

// PersonHandler covers the people catalog (actors, directors,
// writers, producers). Reads are public; writes are staff-only via
// the router.
type PersonHandler struct {
	People *repository.PersonRepo
	Files  *storage.FileStore
}

func NewPersonHandler(p *repository.PersonRepo, fs *storage.FileStore) *PersonHandler {
	return &PersonHandler{People: p, Files: fs}
}

type personReq struct {
	Name      string `json:"name" validate:"required,max=255"`
	Bio       string `json:"bio" validate:"max=5000"`
	BirthDate string `json:"birth_date"`
	Role      string `json:"role" validate:"required"`
}

type personResp struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birth_date,omitempty"`
	PhotoPath string `json:"photo_path"`
	Role      string `json:"role"`
}

func toPersonResp(p model.Person) personResp {
	resp := personResp{ID: p.ID, Name: p.Name, Bio: p.Bio, PhotoPath: p.PhotoPath, Role: p.Role}
	if p.BirthDate != nil {
		resp.BirthDate = p.BirthDate.Format(dateLayout)
	}
	return resp
}

func (r personReq) toModel() (model.Person, error) {
	p := model.Person{Name: r.Name, Bio: r.Bio, Role: strings.ToUpper(r.Role)}
	if r.BirthDate != "" {
		t, err := time.Parse(dateLayout, r.BirthDate)
		if err != nil {
			return p, err
		}
		p.BirthDate = &t
	}
	return p, nil
}

// List returns a page of people, optionally filtered by ?role=.
func (h *PersonHandler) List(c echo.Context) error {
	role := strings.ToUpper(c.QueryParam("role"))
	if role != "" && !model.ValidPersonRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown person role"})
	}
	page, pageSize := pagination(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	people, total, err := h.People.List(ctx, role, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list people failed"})
	}
	items := make([]personResp, 0, len(people))
	for _, p := range people {
		items = append(items, toPersonResp(p))
	}
	return c.JSON(http.StatusOK, pagedResp{Total: total, Page: page, PageSize: pageSize, Items: items})
}

// Get returns one person.
func (h *PersonHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.People.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPersonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load person failed"})
	}
	return c.JSON(http.StatusOK, toPersonResp(p))
}

// Create adds a person to the catalog.
func (h *PersonHandler) Create(c echo.Context) error {
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	if !model.ValidPersonRole(strings.ToUpper(req.Role)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown person role"})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birth_date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.People.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create person failed"})
	}
	return c.JSON(http.StatusCreated, toPersonResp(p))
}

// Update rewrites a person's fields.
func (h *PersonHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	var req personReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return invalidFields(c, err)
	}
	if !model.ValidPersonRole(strings.ToUpper(req.Role)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown person role"})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birth_date must be YYYY-MM-DD"})
	}
	p.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Keep the stored photo; it only changes via upload.
	cur, err := h.People.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPersonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load person failed"})
	}
	p.PhotoPath = cur.PhotoPath

	if err := h.People.Update(ctx, &p); err != nil {
		if err == repository.ErrPersonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update person failed"})
	}
	return c.JSON(http.StatusOK, toPersonResp(p))
}

// UploadPhoto validates and stores a portrait photo for a person.
// Portraits follow the poster rules: jpg/png, 5 MB cap.
func (h *PersonHandler) UploadPhoto(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field required"})
	}
	if err := storage.Validate(storage.KindPoster, fh.Filename, fh.Size); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	path, err := h.Files.Save(storage.KindPoster, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store upload failed"})
	}
	if err := h.People.SetPhotoPath(ctx, id, path); err != nil {
		if err == repository.ErrPersonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save path failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"path": path})
}

// Delete removes a person from the catalog.
func (h *PersonHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.People.Delete(ctx, id); err != nil {
		if err == repository.ErrPersonNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete person failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
