package admin_controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/controllers/admin_controllers/entities"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/controllers/queries"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/types"
)

type AdminController struct {
	Referral *referral_service.ReferralService
}

// GetTrades lists the trades of every user. Commission is what the trade
// pays the trader's inviter, zero without one.
func (ctrl *AdminController) GetTrades(c *fiber.Ctx) error {
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

	repo := ctrl.Referral.Repository()
	trades_json := make([]*entities.TradeEntity, 0)

	for _, trade := range repo.GetAllTrades() {
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

		entity := &entities.TradeEntity{
			ID:        trade.ID,
			UID:       trade.UID,
			Symbol:    trade.Symbol,
			Type:      trade.Type,
			Amount:    trade.Amount,
			Fee:       trade.Fee,
			CreatedAt: trade.Timestamp,
		}
		if owner, err := repo.GetUserByID(trade.UID); err == nil {
			entity.Email = owner.Email
			entity.InviterUID = owner.InviterUID
			if owner.HavingInviter() {
				entity.Commission = trade.Commission()
			}
		}

		trades_json = append(trades_json, entity)
	}

	sort.SliceStable(trades_json, func(i, j int) bool {
		if params.OrderBy == types.OrderByAsc {
			return trades_json[i].CreatedAt.Before(trades_json[j].CreatedAt)
		}

		return trades_json[i].CreatedAt.After(trades_json[j].CreatedAt)
	})

	return c.Status(200).JSON(helpers.Paginate(c, trades_json, params.Limit, params.Page))
}
