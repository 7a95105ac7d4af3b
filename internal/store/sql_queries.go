package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-vault/models"
)

const (
	vaultsTable = "vaults"
	filesTable  = "files"
)

var vaultColumns = []string{
	"vault_id",
	"email",
	"password_hash",
	"key_hash",
	"security_question",
	"security_answer_hash",
	"failed_attempts",
	"locked",
	"destroyed",
	"created_at",
	"destroyed_at",
}

var fileColumns = []string{
	"file_id",
	"vault_id",
	"name",
	"blob_key",
	"size",
	"created_at",
}

func (db *DB) buildInsertVaultQuery(vault models.Vault) (string, []any, error) {
	return db.builder().
		Insert(vaultsTable).
		Columns("email", "password_hash", "key_hash", "security_question", "security_answer_hash",
			"failed_attempts", "locked", "destroyed", "created_at").
		Values(vault.Email, vault.PasswordHash, vault.KeyHash, vault.SecurityQuestion, vault.SecurityAnswerHash,
			0, false, false, vault.CreatedAt.UTC()).
		Suffix("RETURNING vault_id").
		ToSql()
}

func (db *DB) buildSelectVaultByEmailQuery(email string) (string, []any, error) {
	return db.builder().
		Select(vaultColumns...).
		From(vaultsTable).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func (db *DB) buildRecordFailedLoginQuery(vaultID int64, maxAttempts int) (string, []any, error) {
	return db.builder().
		Update(vaultsTable).
		Set("failed_attempts", sq.Expr("failed_attempts + 1")).
		Set("locked", sq.Expr("CASE WHEN failed_attempts + 1 >= ? THEN TRUE ELSE locked END", maxAttempts)).
		Where(sq.Eq{"vault_id": vaultID, "destroyed": false}).
		Suffix("RETURNING " + strings.Join(vaultColumns, ", ")).
		ToSql()
}

func (db *DB) buildResetFailedLoginsQuery(vaultID int64) (string, []any, error) {
	return db.builder().
		Update(vaultsTable).
		Set("failed_attempts", 0).
		Where(sq.Eq{"vault_id": vaultID}).
		ToSql()
}

func (db *DB) buildUnlockWithPasswordQuery(vaultID int64, passwordHash string) (string, []any, error) {
	return db.builder().
		Update(vaultsTable).
		Set("password_hash", passwordHash).
		Set("locked", false).
		Set("failed_attempts", 0).
		Where(sq.Eq{"vault_id": vaultID, "destroyed": false}).
		ToSql()
}

func (db *DB) buildMarkDestroyedQuery(vaultID int64, at time.Time) (string, []any, error) {
	return db.builder().
		Update(vaultsTable).
		Set("password_hash", "").
		Set("key_hash", "").
		Set("security_answer_hash", "").
		Set("locked", true).
		Set("destroyed", true).
		Set("destroyed_at", at.UTC()).
		Where(sq.Eq{"vault_id": vaultID}).
		ToSql()
}

func (db *DB) buildDeleteVaultQuery(vaultID int64) (string, []any, error) {
	return db.builder().
		Delete(vaultsTable).
		Where(sq.Eq{"vault_id": vaultID}).
		ToSql()
}

func (db *DB) buildSelectFileQuery(vaultID int64, name string) (string, []any, error) {
	return db.builder().
		Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"vault_id": vaultID, "name": name}).
		ToSql()
}

func (db *DB) buildUpsertFileQuery(file models.FileInfo) (string, []any, error) {
	return db.builder().
		Insert(filesTable).
		Columns("vault_id", "name", "blob_key", "size", "created_at").
		Values(file.VaultID, file.Name, file.BlobKey, file.Size, file.CreatedAt().UTC()).
		Suffix("ON CONFLICT (vault_id, name) DO UPDATE SET " +
			"blob_key = excluded.blob_key, size = excluded.size, created_at = excluded.created_at").
		ToSql()
}

func (db *DB) buildListFilesQuery(vaultID int64) (string, []any, error) {
	return db.builder().
		Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"vault_id": vaultID}).
		OrderBy("created_at DESC", "name").
		ToSql()
}

func (db *DB) buildSelectFilesByNameQuery(name string) (string, []any, error) {
	return db.builder().
		Select(fileColumns...).
		From(filesTable).
		Where(sq.Eq{"name": name}).
		ToSql()
}

func (db *DB) buildDeleteFilesQuery(vaultID int64) (string, []any, error) {
	return db.builder().
		Delete(filesTable).
		Where(sq.Eq{"vault_id": vaultID}).
		ToSql()
}
