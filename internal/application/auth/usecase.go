package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ubicacion-qr/internal/application/dto"
	"github.com/jhoicas/ubicacion-qr/internal/domain"
	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
	"github.com/jhoicas/ubicacion-qr/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del operador único configurado por entorno.
type AuthUseCase struct {
	operator entity.Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. Si operator.Role está vacío se asume RoleOperator.
func NewAuthUseCase(operator entity.Operator, jwtCfg JWTConfig) *AuthUseCase {
	if operator.Role == "" {
		operator.Role = entity.RoleOperator
	}
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Enabled indica si hay secreto y hash configurados; sin ellos el login no es posible.
func (uc *AuthUseCase) Enabled() bool {
	return uc.jwtCfg.Secret != "" && uc.operator.PasswordHash != ""
}

// Login verifica usuario/password con bcrypt y emite un JWT.
//
// Retorna domain.ErrForbidden si el login no está habilitado y domain.ErrUnauthorized
// si las credenciales no coinciden.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, domain.ErrForbidden
	}
	if !strings.EqualFold(strings.TrimSpace(in.Username), uc.operator.Username) {
		// Igual se compara el hash para no distinguir usuario inexistente por tiempo.
		_ = bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Username, uc.operator.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  uc.operator.Username,
		Role:      uc.operator.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
