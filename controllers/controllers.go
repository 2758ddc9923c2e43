package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"savrepa-api/utils"
)

// apiError carries an HTTP status decided inside a transaction so the
// handler can map it onto the response after rollback.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func errValidation(message string) error {
	return &apiError{status: http.StatusBadRequest, message: message}
}

func errNotFound(resource string) error {
	return &apiError{status: http.StatusNotFound, message: resource + " not found"}
}

// respondTxError maps a failed transaction onto the wire. Anything that is
// not a deliberate apiError is a storage failure and stays generic.
func respondTxError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		if apiErr.status == http.StatusBadRequest {
			utils.SendValidationError(c, apiErr.message)
			return
		}
		utils.SendError(c, apiErr.status, apiErr.message)
		return
	}

	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("transaction failed")
	utils.SendStorageError(c)
}

// pathID parses the numeric :id path parameter. An unparsable id behaves
// like a missing row.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// taken reports whether a row other than excludeID already holds value in
// the given unique column. Pass excludeID 0 on create.
func taken(tx *gorm.DB, model interface{}, column, value string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// refExists reports whether the referenced parent row is present.
func refExists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// hasChildren reports whether any row of model references id through the
// given foreign key column. Used by the reject-if-children delete policy.
func hasChildren(tx *gorm.DB, model interface{}, column string, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
