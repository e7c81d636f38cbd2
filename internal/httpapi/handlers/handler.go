package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/suPer8Hu/animai/internal/common"
	"github.com/suPer8Hu/animai/internal/egg"
	"github.com/suPer8Hu/animai/internal/users"
)

type Handler struct {
	UsersSvc *users.Service
	EggSvc   *egg.Service
}

func NewHandler(usersSvc *users.Service, eggSvc *egg.Service) *Handler {
	return &Handler{UsersSvc: usersSvc, EggSvc: eggSvc}
}

// business codes
const (
	codeInvalidJSON   = 10001
	codeInvalidParam  = 10002
	codeValidation    = 40001
	codeForbidden     = 40301
	codeNotFound      = 40401
	codeConflict      = 40901
	codeInternalError = 50001
)

// fail maps a service error onto its HTTP status and business code.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		common.Fail(c, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, common.ErrNotFound):
		common.Fail(c, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, common.ErrForbidden):
		common.Fail(c, http.StatusForbidden, codeForbidden, err.Error())
	case errors.Is(err, common.ErrConflict):
		common.Fail(c, http.StatusConflict, codeConflict, err.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("[Handler] internal error")
		common.Fail(c, http.StatusInternalServerError, codeInternalError, "internal server error")
	}
}

func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func queryUserID(c *gin.Context) (uint64, bool) {
	uid, ok := parseID(c.Query("userId"))
	if !ok {
		common.Fail(c, http.StatusBadRequest, codeInvalidParam, "invalid userId")
	}
	return uid, ok
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, ok := parseID(c.Param(name))
	if !ok {
		common.Fail(c, http.StatusBadRequest, codeInvalidParam, "invalid "+name)
	}
	return id, ok
}
