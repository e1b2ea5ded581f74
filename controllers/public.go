package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/rebate/config"
	"github.com/zsmartex/rebate/controllers/auth"
	"github.com/zsmartex/rebate/controllers/entities"
	"github.com/zsmartex/rebate/controllers/helpers"
	"github.com/zsmartex/rebate/controllers/queries"
	"github.com/zsmartex/rebate/monitoring"
	"github.com/zsmartex/rebate/services/account_service"
	"github.com/zsmartex/rebate/services/referral_service"
	"github.com/zsmartex/rebate/store"
)

const UserRegisteredSubject = "rebate.user.registered"

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type PublicController struct {
	Referral *referral_service.ReferralService
	Accounts *account_service.AccountService
	Issuer   *auth.Issuer
	Metrics  *monitoring.Metrics
	Events   Publisher
}

type CreateSessionParams struct {
	UID string `json:"uid" form:"uid" validate:"required"`
}

func (p CreateSessionParams) Messages() map[string]string {
	return map[string]string{
		"required": "session.missing_{field}",
	}
}

func (p CreateSessionParams) Translates() map[string]string {
	return map[string]string{"UID": "uid"}
}

func GetTimestamp(c *fiber.Ctx) error {
	return c.Status(200).JSON(time.Now())
}

// GetUsers lists the users offered on the login screen.
func (ctrl *PublicController) GetUsers(c *fiber.Ctx) error {
	params := new(queries.UserQueries)
	if err := c.QueryParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidQuery)
	}

	users := ctrl.Referral.SearchUsers(params.Query)
	user_entities := make([]*entities.UserEntity, 0, len(users))
	for _, user := range users {
		user_entities = append(user_entities, entities.UserToEntity(user))
	}

	return c.Status(200).JSON(user_entities)
}

func (ctrl *PublicController) GetInvite(c *fiber.Ctx) error {
	inviter, err := ctrl.Accounts.ResolveInvite(c.Params("code"))
	if errors.Is(err, store.ErrRecordNotFound) {
		return helpers.ResponseError(c, 404, "public.invite.not_found")
	} else if err != nil {
		config.Logger.Errorf("Failed to resolve invite %s, Error: %v", c.Params("code"), err)

		return helpers.ResponseError(c, 500, helpers.ServerInternalError)
	}

	return c.Status(200).JSON(entities.UserToEntity(inviter))
}

// GetRegisterPrefill backs the registration form. An unknown invite code is
// kept so the form reports it on submit.
func (ctrl *PublicController) GetRegisterPrefill(c *fiber.Ctx) error {
	params := new(queries.RegisterQueries)
	if err := c.QueryParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidQuery)
	}

	prefill := &entities.RegisterPrefillEntity{InviteCode: params.Invite}
	if inviter, err := ctrl.Accounts.ResolveInvite(params.Invite); err == nil {
		prefill.Inviter = entities.UserToEntity(inviter)
	}

	return c.Status(200).JSON(prefill)
}

func (ctrl *PublicController) Register(c *fiber.Ctx) error {
	params := new(account_service.RegisterParams)
	if err := c.BodyParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidBody)
	}

	user, err := ctrl.Accounts.Register(*params)
	if err != nil {
		var validation_error *account_service.ValidationError
		if errors.As(err, &validation_error) {
			ctrl.Metrics.RecordRegistration(validation_error.Key)

			return c.Status(422).JSON(fiber.Map{
				"errors":  []string{validation_error.Key},
				"message": validation_error.Message,
			})
		}

		config.Logger.Errorf("Failed to register %s, Error: %v", params.Email, err)
		ctrl.Metrics.RecordRegistration("error")

		return helpers.ResponseError(c, 500, helpers.ServerInternalError)
	}

	ctrl.Metrics.RecordRegistration("success")
	if user.HavingInviter() {
		ctrl.Referral.InvalidateUserStats(user.InviterUID.String)
	}
	ctrl.publishRegistered(entities.UserToEntity(user))

	config.Logger.Infof("Registered user %s (%s)", user.UID, user.Email)

	return c.Status(201).JSON(entities.UserToEntity(user))
}

func (ctrl *PublicController) publishRegistered(user *entities.UserEntity) {
	if ctrl.Events == nil {
		return
	}

	payload, err := json.Marshal(user)
	if err != nil {
		config.Logger.Errorf("Failed to encode registration event, Error: %v", err)
		return
	}

	if err := ctrl.Events.Publish(UserRegisteredSubject, payload); err != nil {
		config.Logger.Errorf("Failed to publish %s, Error: %v", UserRegisteredSubject, err)
	}
}

// CreateSession logs in as an existing user and returns a session token.
func (ctrl *PublicController) CreateSession(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	params := new(CreateSessionParams)
	if err := c.BodyParser(params); err != nil {
		return helpers.ResponseError(c, 500, helpers.InvalidBody)
	}

	helpers.Vaildate(params, errs)
	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	user, err := ctrl.Accounts.Login(params.UID)
	if err != nil {
		ctrl.Metrics.RecordLogin(false)

		return helpers.ResponseError(c, 404, "session.user_not_found")
	}

	token, expires_at, err := ctrl.Issuer.IssueToken(user)
	if err != nil {
		config.Logger.Errorf("Failed to issue session of %s, Error: %v", user.UID, err)

		return helpers.ResponseError(c, 500, helpers.ServerInternalError)
	}

	ctrl.Metrics.RecordLogin(true)

	return c.Status(201).JSON(&entities.SessionEntity{
		Token:     token,
		ExpiresAt: expires_at,
		User:      entities.UserToEntity(user),
	})
}
