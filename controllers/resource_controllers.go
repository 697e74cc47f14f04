package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xgrece/bodegon/database"
	"github.com/xgrece/bodegon/kds"
	"github.com/xgrece/bodegon/utils"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

var (
	ErrInvalidID    = &CustomError{"El id debe ser un entero positivo"}
	ErrInvalidQuery = &CustomError{"skip debe ser >= 0 y limit debe ser > 0"}
	ErrInternal     = &CustomError{"Error interno, intente nuevamente"}
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// ResourceText holds the user facing messages of one resource.
type ResourceText struct {
	Created  string
	Detail   string
	Listed   string
	Updated  string
	Deleted  string
	NotFound string
}

// ResourceViews names the HTML templates rendered for one resource.
type ResourceViews struct {
	List   string
	Detail string
}

// ResourceController serves create, get, list, update and delete for one entity. The
// same handler answers JSON and HTML clients; only the Responder differs.
type ResourceController[T any, P database.Record[T], In any] struct {
	Repo     *database.Repository[T, P]
	Notifier kds.Notifier
	Resource string // event prefix: client, table, order
	Build    func(In) T
	Text     ResourceText
	Views    ResourceViews
}

func (rc *ResourceController[T, P, In]) Create(c *gin.Context) {
	out := utils.Negotiate(c, rc.Views.Detail)

	var in In
	if err := c.ShouldBind(&in); err != nil {
		out.Fail(c, http.StatusBadRequest, err)
		return
	}

	rec, err := rc.Repo.Create(c.Request.Context(), rc.Build(in))
	if err != nil {
		rc.internalError(c, out, err)
		return
	}

	rc.notify(kds.ActionCreate, rec)
	utils.InfoLogger.WithField("resource", rc.Resource).Infof("%s created (ID=%d)", rc.Resource, P(rec).GetID())
	out.Respond(c, http.StatusOK, rc.Text.Created, rec)
}

func (rc *ResourceController[T, P, In]) Get(c *gin.Context) {
	out := utils.Negotiate(c, rc.Views.Detail)

	id, ok := parseID(c, out)
	if !ok {
		return
	}

	rec, err := rc.Repo.Get(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		out.Fail(c, http.StatusNotFound, errors.New(rc.Text.NotFound))
		return
	}
	if err != nil {
		rc.internalError(c, out, err)
		return
	}

	out.Respond(c, http.StatusOK, rc.Text.Detail, rec)
}

func (rc *ResourceController[T, P, In]) List(c *gin.Context) {
	out := utils.Negotiate(c, rc.Views.List)

	skip, limit, ok := parsePage(c, out)
	if !ok {
		return
	}

	recs, err := rc.Repo.List(c.Request.Context(), skip, limit)
	if err != nil {
		rc.internalError(c, out, err)
		return
	}

	out.Respond(c, http.StatusOK, rc.Text.Listed, recs)
}

// Update replaces every mutable field of the record.
func (rc *ResourceController[T, P, In]) Update(c *gin.Context) {
	out := utils.Negotiate(c, rc.Views.Detail)

	id, ok := parseID(c, out)
	if !ok {
		return
	}

	var in In
	if err := c.ShouldBind(&in); err != nil {
		out.Fail(c, http.StatusBadRequest, err)
		return
	}

	rec, err := rc.Repo.Update(c.Request.Context(), id, rc.Build(in))
	if errors.Is(err, database.ErrNotFound) {
		out.Fail(c, http.StatusNotFound, errors.New(rc.Text.NotFound))
		return
	}
	if err != nil {
		rc.internalError(c, out, err)
		return
	}

	rc.notify(kds.ActionUpdate, rec)
	out.Respond(c, http.StatusOK, rc.Text.Updated, rec)
}

// Delete answers success whether or not the record existed.
func (rc *ResourceController[T, P, In]) Delete(c *gin.Context) {
	out := utils.Negotiate(c, utils.MessageView)

	id, ok := parseID(c, out)
	if !ok {
		return
	}

	if err := rc.Repo.Delete(c.Request.Context(), id); err != nil {
		rc.internalError(c, out, err)
		return
	}

	rc.notify(kds.ActionDelete, gin.H{"id": id})
	out.Respond(c, http.StatusOK, rc.Text.Deleted, gin.H{"id": id})
}

func (rc *ResourceController[T, P, In]) notify(action string, data interface{}) {
	if rc.Notifier == nil {
		return
	}
	rc.Notifier.Notify(kds.Message{
		Event: kds.EventName(rc.Resource, action),
		Data:  data,
	})
}

func (rc *ResourceController[T, P, In]) internalError(c *gin.Context, out utils.Responder, err error) {
	_ = c.Error(err)
	utils.ErrorLogger.WithFields(logrus.Fields{
		"resource": rc.Resource,
		"method":   c.Request.Method,
		"path":     c.Request.URL.Path,
	}).WithError(err).Error("store failure")
	out.Fail(c, http.StatusInternalServerError, ErrInternal)
}

// parseID reads the :id path parameter. On failure the 400 response is already written.
func parseID(c *gin.Context, out utils.Responder) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		out.Fail(c, http.StatusBadRequest, ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}

func parsePage(c *gin.Context, out utils.Responder) (int, int, bool) {
	skip, limit := defaultSkip, defaultLimit
	var err error

	if v, ok := c.GetQuery("skip"); ok {
		if skip, err = strconv.Atoi(v); err != nil || skip < 0 {
			out.Fail(c, http.StatusBadRequest, ErrInvalidQuery)
			return 0, 0, false
		}
	}
	if v, ok := c.GetQuery("limit"); ok {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			out.Fail(c, http.StatusBadRequest, ErrInvalidQuery)
			return 0, 0, false
		}
	}
	return skip, limit, true
}
