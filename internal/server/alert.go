package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	alertdomain "github.com/smallbiznis/riskwatch/internal/alert/domain"
	"github.com/smallbiznis/riskwatch/pkg/db/pagination"
)

type sendAlertRequest struct {
	// CustomerID accepts a JSON number or a numeric string; accounting
	// exports are inconsistent about which one they send.
	CustomerID any    `json:"customer_id"`
	Message    string `json:"message"`
	Preview    string `json:"preview"`
	EmailBody  string `json:"email_body"`
}

func (s *Server) SendAlert(c *gin.Context) {
	var req sendAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, ok := coerceCustomerID(req.CustomerID)
	if !ok {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	alert, err := s.alertSvc.CreateFromSnapshot(c.Request.Context(), alertdomain.CreateAlertRequest{
		CustomerID: customerID,
		Message:    strings.TrimSpace(req.Message),
		Preview:    strings.TrimSpace(req.Preview),
		EmailBody:  strings.TrimSpace(req.EmailBody),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"status":        alert.Status,
		"alert_id":      alert.ID.String(),
		"customer_id":   alert.CustomerID,
		"customer_name": alert.CustomerName,
		"recipient":     s.cfg.Email.To,
	}})
}

func (s *Server) ListAlerts(c *gin.Context) {
	var query struct {
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.alertSvc.List(c.Request.Context(), query.Limit(500))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateAlertRequest struct {
	Message *string `json:"message"`
	Status  *string `json:"status"`
}

func (s *Server) UpdateAlert(c *gin.Context) {
	id, err := alertIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.alertSvc.Update(c.Request.Context(), id, alertdomain.UpdateAlertRequest{
		Message: req.Message,
		Status:  req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAlert(c *gin.Context) {
	id, err := alertIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.alertSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id.String(), "deleted": true}})
}

func alertIDParam(c *gin.Context) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, newValidationError("id", "invalid_id", "invalid id")
	}
	return id, nil
}

func coerceCustomerID(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		id := int64(t)
		if t != float64(id) || id <= 0 {
			return 0, false
		}
		return id, true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
