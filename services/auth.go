package services

import (
	"errors"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/shared"
)

// AuthService guards the admin surface (migrations, exports). There are no
// end-user accounts; a single bcrypt-hashed admin password comes from the
// environment and a successful login mints a short-lived token.
type AuthService struct {
	context.DefaultService

	jwtSvc *JWTService

	adminPasswordHash string
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.adminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)

	if svc.adminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH not set; admin login disabled")
	}
	return nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if svc.adminPasswordHash == "" {
		return nil, shared.NewForbiddenError(errors.New("admin login disabled"), "Forbidden")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(svc.adminPasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Unauthorized")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(shared.RoleAdmin, shared.RoleAdmin)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue token")
	}

	return &dto.LoginResponse{TokenPair: *pair, Role: shared.RoleAdmin}, nil
}
