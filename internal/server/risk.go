package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ListCustomerRisk scores every customer from the accounting source and
// persists one snapshot per customer before responding.
func (s *Server) ListCustomerRisk(c *gin.Context) {
	resp, err := s.riskSvc.RefreshAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRiskSnapshots(c *gin.Context) {
	resp, err := s.riskSvc.ListSnapshots(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRiskSnapshot(c *gin.Context) {
	customerID, err := customerIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.riskSvc.GetSnapshot(c.Request.Context(), customerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRiskSnapshot(c *gin.Context) {
	customerID, err := customerIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.riskSvc.DeleteSnapshot(c.Request.Context(), customerID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"customer_id": customerID, "deleted": true}})
}

func customerIDParam(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Param("customerId"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id")
	}
	return id, nil
}
