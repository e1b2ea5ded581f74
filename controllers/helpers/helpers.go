package helpers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/validate"

	"github.com/zsmartex/rebate/models"
)

var (
	AuthzInvalidSession = "authz.invalid_session"
	ServerInternalError = "server.internal_error"
	InvalidQuery        = "server.method.invalid_query"
	InvalidBody         = "server.method.invalid_message_body"
	RecordNotFound      = "record.not_found"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Vaildate(payload interface{}, err_src *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				err_src.Errors = append(err_src.Errors, err)
			}
		}
	}
}

// VaildateMessage builds the error keys of a query struct, e.g.
// "referral.commission.non_integer_limit".
func VaildateMessage(prefix string) map[string]string {
	return validate.MS{
		"uint": prefix + ".non_integer_{field}",
		"in":   prefix + ".invalid_{field}",
		"enum": prefix + ".invalid_{field}",
	}
}

func VaildateTranslateFields() map[string]string {
	return validate.MS{
		"Limit":    "limit",
		"Page":     "page",
		"Type":     "type",
		"Symbol":   "symbol",
		"OrderBy":  "order_by",
		"TimeFrom": "time_from",
		"TimeTo":   "time_to",
	}
}

func ResponseError(c *fiber.Ctx, status int, keys ...string) error {
	return c.Status(status).JSON(Errors{Errors: keys})
}

func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("CurrentUser").(*models.User)

	return user
}

const (
	DefaultLimit = 100
	DefaultPage  = 1
)

// Paginate returns the requested page of records and sets the page and
// per-page headers. Zero limit or page fall back to the defaults; a page past
// the end is empty.
func Paginate[T any](c *fiber.Ctx, records []T, limit, page int) []T {
	if limit == 0 {
		limit = DefaultLimit
	}
	if page == 0 {
		page = DefaultPage
	}

	result := make([]T, 0)
	// page-1 is bounded by len/limit before multiplying, so offset cannot overflow
	if limit > 0 && page > 0 && page-1 <= len(records)/limit {
		offset := (page - 1) * limit
		end := len(records)
		if limit < end-offset {
			end = offset + limit
		}
		result = append(result, records[offset:end]...)
	}

	c.Response().Header.Add("page", strconv.FormatInt(int64(page), 10))
	c.Response().Header.Add("per-page", strconv.FormatInt(int64(len(result)), 10))
	c.Response().Header.Add("total", strconv.FormatInt(int64(len(records)), 10))

	return result
}
