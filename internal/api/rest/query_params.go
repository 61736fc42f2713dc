package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chainpass/ticketing/internal/api/shared/constants"
	"github.com/chainpass/ticketing/internal/domain"
)

// ListRequestsQueryParams holds query parameters for GET /events/:eventId/registrations
type ListRequestsQueryParams struct {
	Statuses []string `form:"status"`
	Wallet   string   `form:"wallet"`
	Limit    int      `form:"limit,default=20"`
	Offset   uint64   `form:"offset,default=0"`
}

// WalletQueryParams holds the wallet query parameter of attendee lookups
type WalletQueryParams struct {
	Wallet string `form:"wallet" binding:"required"`
}

// ParseListRequestsQuery parses query parameters for GET /events/:eventId/registrations
func ParseListRequestsQuery(c *gin.Context) (*ListRequestsQueryParams, error) {
	var params ListRequestsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit <= 0 {
		params.Limit = constants.DEFAULT_REQUESTS_LIMIT
	}
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// RequestStatuses converts the status filter, rejecting unknown values
func (p *ListRequestsQueryParams) RequestStatuses() ([]domain.RequestStatus, error) {
	statuses := make([]domain.RequestStatus, 0, len(p.Statuses))
	for _, s := range p.Statuses {
		status := domain.RequestStatus(s)
		if !domain.IsValidRequestStatus(status) {
			return nil, fmt.Errorf("invalid status: %s", s)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// parseUintParam reads a positive integer path parameter
func parseUintParam(c *gin.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}
