package market_controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/controllers/entities"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/controllers/queries"
	"github.com/zsmartex/rebate/models"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/types"
)

type MarketController struct {
	Referral *referral_service.ReferralService
}

// FilterTrades applies the symbol, type and time filters of params and
// orders the result. History arrives newest first.
func FilterTrades(trades []*models.TradeHistory, params *queries.TradeFilters) []*models.TradeHistory {
	result := make([]*models.TradeHistory, 0, len(trades))

	for _, trade := range trades {
		if len(params.Symbol) > 0 && trade.Symbol != params.Symbol {
			continue
		}
		if len(params.Type) > 0 && trade.Type != types.TradeType(params.Type) {
			continue
		}
		if params.TimeFrom > 0 && trade.Timestamp.Before(time.Unix(params.TimeFrom, 0)) {
			continue
		}
		if params.TimeTo > 0 && !trade.Timestamp.Before(time.Unix(params.TimeTo, 0)) {
			continue
		}

		result = append(result, trade)
	}

	if types.OrderBy(params.OrderBy) == types.OrderByAsc {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Timestamp.Before(result[j].Timestamp)
		})
	}

	return result
}

func (ctrl *MarketController) GetTrades(c *fiber.Ctx) error {
	CurrentUser := helpers.CurrentUser(c)

	var errors = new(helpers.Errors)
	params := new(queries.TradeFilters)

	if err := c.QueryParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidQuery)
	}

	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	if len(params.OrderBy) == 0 {
		params.OrderBy = types.OrderByDesc
	}

	trades := FilterTrades(ctrl.Referral.GetTradeHistory(CurrentUser.UID), params)
	trades = helpers.Paginate(c, trades, params.Limit, params.Page)

	trades_json := make([]*entities.TradeEntity, 0, len(trades))
	for _, trade := range trades {
		trades_json = append(trades_json, entities.TradeToEntity(trade))
	}

	return c.Status(200).JSON(trades_json)
}
