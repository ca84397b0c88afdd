package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "madrasahku_backend/internals/features/users/auth/model"
	userModel "madrasahku_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

// FindUserByContact resolves email-or-phone inside one madrasa.
func FindUserByContact(db *gorm.DB, madrasaID uuid.UUID, contact string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.
		Where("madrasa_id = ? AND (email = ? OR phone = ?)", madrasaID, contact, contact).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newPassword string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newPassword).Error
}

/* ====================== REFRESH TOKEN ====================== */

func CreateRefreshToken(db *gorm.DB, token *authModel.RefreshToken) error {
	return db.Create(token).Error
}

func RefreshTokenHashExists(db *gorm.DB, hash []byte) (bool, error) {
	var exists bool
	err := db.Raw(
		`SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > now())`,
		hash,
	).Scan(&exists).Error
	return exists, err
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash []byte) error {
	return db.Where("token_hash = ?", hash).Delete(&authModel.RefreshToken{}).Error
}

func DeleteRefreshTokensForUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshToken{}).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

func BlacklistToken(db *gorm.DB, token string, ttl time.Duration) error {
	return db.Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().UTC().Add(ttl),
	}).Error
}

func CleanupExpiredBlacklist(db *gorm.DB) (int64, error) {
	res := db.Exec(`DELETE FROM token_blacklist WHERE expired_at <= ?`, time.Now().UTC())
	return res.RowsAffected, res.Error
}
