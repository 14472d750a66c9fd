package validation

import (
	"path"
	"strings"

	"data-reconciler/core/logger"
	"data-reconciler/core/report"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for validation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/validations")
	group.Get("/health", h.HandleHealth)
	group.Get("/profiles", h.HandleListProfiles)
	group.Get("/profiles/:profile", h.HandleGetProfile)
	group.Post("/:profile", h.HandleRun)
	group.Get("/:profile/reports", h.HandleListReports)
	group.Get("/:profile/reports/:file", h.HandleDownloadReport)
}

// HandleRun reconciles one profile.
// @Summary Run Validation
// @Description Reconciles the local dataset of a profile against the remote API. Returns 200 when every record matched and 422 when at least one did not.
// @Tags validations
// @Produce json
// @Param profile path string true "Profile name (e.g. 'assets')"
// @Param records query int false "Number of remote records to validate (0 = all)"
// @Param page_size query int false "Page size"
// @Param upload query bool false "Upload reports to object storage"
// @Success 200 {object} report.Result "All records matched"
// @Failure 422 {object} report.Result "Mismatches found"
// @Failure 400 {object} map[string]string "Configuration error"
// @Failure 404 {object} map[string]string "Unknown profile"
// @Failure 502 {object} map[string]string "Remote or database unreachable"
// @Router /validations/{profile} [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	name := c.Params("profile")
	l := logger.WithRayID(h.service.logger, c)

	req := Request{
		Profile:       name,
		TargetRecords: c.QueryInt("records", 0),
		PageSize:      c.QueryInt("page_size", 0),
		Upload:        c.QueryBool("upload", false),
	}
	if req.TargetRecords < 0 || req.PageSize < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "records and page_size must not be negative",
		})
	}

	res, shared, err := h.service.RunShared(c.Context(), req)
	if err != nil {
		l.Error("Validation run failed", zap.String("profile", name), zap.Error(err))
		return c.Status(StatusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if shared {
		l.Info("Validation result shared with a concurrent request", zap.String("profile", name), zap.String("run_id", res.RunID))
	}

	status := fiber.StatusOK
	if !res.Aggregate.OverallPass {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(res)
}

// HandleHealth reports service readiness.
// @Summary Health
// @Tags validations
// @Produce json
// @Success 200 {object} map[string]any
// @Router /validations/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": h.service.DatabaseReady(c.Context()),
		"storage":  h.service.opts.Storage != nil,
	})
}

// HandleListProfiles lists the available profiles.
// @Summary List Profiles
// @Tags validations
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 400 {object} map[string]string
// @Router /validations/profiles [get]
func (h *Handler) HandleListProfiles(c *fiber.Ctx) error {
	names, err := h.service.Profiles()
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(fiber.Map{"profiles": names})
}

// HandleGetProfile returns one profile.
// @Summary Get Profile
// @Tags validations
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} profile.Profile
// @Failure 404 {object} map[string]string
// @Router /validations/profiles/{profile} [get]
func (h *Handler) HandleGetProfile(c *fiber.Ctx) error {
	p, err := h.service.Profile(c.Params("profile"))
	if err != nil {
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(p)
}

// HandleListReports lists the uploaded reports of a profile.
// @Summary List Reports
// @Tags validations
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /validations/{profile}/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	name := c.Params("profile")
	l := logger.WithRayID(h.service.logger, c)

	objects, err := h.service.StoredReports(c.Context(), name)
	if err != nil {
		l.Error("Listing reports failed", zap.String("profile", name), zap.Error(err))
		return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"profile": name,
		"reports": objects,
	})
}

// HandleDownloadReport streams one uploaded report.
// @Summary Download Report
// @Tags validations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param profile path string true "Profile name"
// @Param file path string true "Report file name"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /validations/{profile}/reports/{file} [get]
func (h *Handler) HandleDownloadReport(c *fiber.Ctx) error {
	name, file := c.Params("profile"), c.Params("file")
	if strings.ContainsAny(file, `/\`) || !strings.HasPrefix(file, name+"_") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "report not found"})
	}
	if h.service.opts.Storage == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": ErrStorageDisabled.Error()})
	}

	object := path.Join(report.ObjectPrefix(name), file)
	body, err := h.service.opts.Storage.GetObject(c.Context(), h.service.opts.Bucket, object, minio.GetObjectOptions{})
	if err == nil {
		// minio returns the object lazily; the first read surfaces a missing key.
		if obj, ok := body.(*minio.Object); ok {
			if _, statErr := obj.Stat(); statErr != nil {
				_ = body.Close()
				err = statErr
			}
		}
	}
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "report not found"})
		}
		logger.WithRayID(h.service.logger, c).Error("Report download failed", zap.String("object", object), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, report.ContentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file+`"`)
	return c.SendStream(body)
}
