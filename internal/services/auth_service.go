package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/PIEROLS15/TaskMasterBackend/internal/models"
)

type authServiceImpl struct {
	logger zerolog.Logger
	db     DB
}

func NewAuthService(logger zerolog.Logger, db DB) AuthService {
	return &authServiceImpl{
		logger: logger,
		db:     db,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	now := time.Now()
	user := models.User{
		Name:      params.Name,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	const insertUserQuery = `
INSERT INTO users (name,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	err = s.db.QueryRow(
		ctx,
		insertUserQuery,
		user.Name,
		user.Email,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				s.logger.Error().
					Str("email", user.Email).
					Msg("user with this email already exists")
				return nil, ErrEmailTaken
			}
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("registered user")
	return &user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (string, error) {
	user := models.User{
		Email: params.Email,
	}

	const selectUserByEmailQuery = `
SELECT id,
       password
FROM users
WHERE email = $1
`
	err := s.db.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("email", user.Email).
				Msg("user not found")
			return "", ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to select user by email")
		return "", err
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Msg("selected user by email")

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return "", err
	} else if !match {
		s.logger.Warn().
			Int64("user_id", user.ID).
			Msg("passwords do not match")
		return "", ErrInvalidCredentials
	}

	plainToken, err := generateToken()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token")
		return "", err
	}

	token := models.AccessToken{
		UserID:    user.ID,
		TokenHash: hashToken(plainToken),
		CreatedAt: time.Now(),
	}

	const insertTokenQuery = `
INSERT INTO access_tokens (user_id,
                           token_hash,
                           created_at)
VALUES ($1, $2, $3)
RETURNING id
`
	err = s.db.QueryRow(
		ctx,
		insertTokenQuery,
		token.UserID,
		token.TokenHash,
		token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert access token")
		return "", err
	}
	s.logger.Debug().
		Int64("token_id", token.ID).
		Msg("inserted access token")

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("logged in")
	return plainToken, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*models.User, error) {
	var user models.User

	const selectUserByTokenQuery = `
SELECT u.id,
       u.name,
       u.email
FROM access_tokens t
         JOIN users u ON u.id = t.user_id
WHERE t.token_hash = $1
`
	err := s.db.QueryRow(
		ctx,
		selectUserByTokenQuery,
		hashToken(token),
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().Msg("access token not found")
			return nil, ErrInvalidToken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by token")
		return nil, err
	}

	return &user, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	const deleteTokensByUserIDQuery = `
DELETE FROM access_tokens
       WHERE user_id = $1
`
	tag, err := s.db.Exec(
		ctx,
		deleteTokensByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to delete access tokens by user id")
		return err
	}
	s.logger.Debug().
		Int64("user_id", userID).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted access tokens by user id")

	s.logger.Info().
		Int64("user_id", userID).
		Msg("logged out")
	return nil
}

func generateToken() (string, error) {
	const length = 32
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// hashToken digests the plaintext for storage and lookup. Only
// digests ever reach the database.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
