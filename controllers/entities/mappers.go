package entities

import "github.com/zsmartex/rebate/models"

func UserToEntity(user *models.User) *UserEntity {
	if user == nil {
		return nil
	}

	return &UserEntity{
		UID:        user.UID,
		Username:   user.Username,
		Email:      user.Email,
		InviterUID: user.InviterUID,
		InviteCode: user.InviteCode,
		CreatedAt:  user.CreatedAt,
	}
}

func InvitedUserToEntity(invited_user *models.InvitedUser) *InvitedUserEntity {
	return &InvitedUserEntity{
		UserEntity:       *UserToEntity(&invited_user.User),
		TradeCount:       invited_user.TradeCount,
		TotalTradeAmount: invited_user.TotalTradeAmount,
		TotalFee:         invited_user.TotalFee,
		Commission:       invited_user.Commission,
	}
}

func CommissionToEntity(history *models.CommissionHistory) *CommissionEntity {
	entity := &CommissionEntity{
		ID:                 history.ID,
		FromUID:            history.FromUID,
		TradeID:            history.TradeID,
		Fee:                history.Fee,
		Amount:             history.Amount,
		Timestamp:          history.Timestamp,
		FormattedTimestamp: history.FormattedTimestamp,
	}
	if history.FromUser != nil {
		entity.FromUsername = history.FromUser.Username
	}
	if history.Trade != nil {
		entity.Symbol = history.Trade.Symbol
		entity.TradeType = history.Trade.Type
	}

	return entity
}

func InviteToEntity(history *models.InviteHistory) *InviteEntity {
	entity := &InviteEntity{
		ID:                 history.ID,
		InviteeUID:         history.InviteeUID,
		InviteCode:         history.InviteCode,
		Status:             history.Status,
		StatusText:         history.StatusLabel(),
		TradeCount:         history.TradeCount,
		TotalCommission:    history.TotalCommission,
		Timestamp:          history.Timestamp,
		FormattedTimestamp: history.FormattedTimestamp,
	}
	if history.Invitee != nil {
		entity.InviteeUsername = history.Invitee.Username
		entity.InviteeEmail = history.Invitee.Email
	}

	return entity
}

func TradeToEntity(history *models.TradeHistory) *TradeEntity {
	return &TradeEntity{
		ID:                 history.ID,
		Symbol:             history.Symbol,
		Type:               history.Type,
		TypeText:           history.TypeText,
		Amount:             history.Amount,
		Fee:                history.Fee,
		Timestamp:          history.Timestamp,
		FormattedTimestamp: history.FormattedTimestamp,
	}
}

func ReleaseCommissionToEntity(release *models.ReleaseCommission) *ReleaseCommissionEntity {
	return &ReleaseCommissionEntity{
		Date:        release.Date,
		Earned:      release.Earned,
		FriendTrade: release.FriendTrade,
		Friend:      release.Friend,
	}
}
