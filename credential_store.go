package auth

import (
	"context"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var passwordDigit = regexp.MustCompile(`[0-9]`)

// BunCredentialStore is the CredentialStore implementation backed by a Bun
// database: user lookup, bcrypt password checks, ordered role enumeration,
// and user creation with password-policy and uniqueness validation.
type BunCredentialStore struct {
	db     *bun.DB
	repo   RepositoryManager
	logger Logger
}

func NewBunCredentialStore(db *bun.DB) *BunCredentialStore {
	return &BunCredentialStore{
		db:     db,
		repo:   NewRepositoryManager(db),
		logger: defLogger{},
	}
}

func (s *BunCredentialStore) WithLogger(logger Logger) *BunCredentialStore {
	s.logger = logger
	return s
}

// Repositories exposes the underlying repository manager
func (s *BunCredentialStore) Repositories() RepositoryManager {
	return s.repo
}

func (s *BunCredentialStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.Users().GetByUsername(ctx, username)
}

// CheckPassword compares the cleartext password against the stored hash.
// Comparison failures are expected outcomes, not errors.
func (s *BunCredentialStore) CheckPassword(ctx context.Context, user *User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return ComparePasswordAndHash(password, user.PasswordHash) == nil
}

// GetRoles enumerates the user's role names ordered by assignment position.
// That order is what the claims builder preserves.
func (s *BunCredentialStore) GetRoles(ctx context.Context, user *User) ([]string, error) {
	if user == nil {
		return nil, ErrIdentityNotFound
	}

	var names []string
	err := s.db.NewSelect().
		TableExpr("user_roles AS ur").
		ColumnExpr("rol.name").
		Join("JOIN roles AS rol ON rol.id = ur.role_id").
		Where("ur.user_id = ?", user.ID).
		OrderExpr("ur.position ASC").
		Scan(ctx, &names)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to enumerate user roles")
	}

	return names, nil
}

// CreateUser validates the password policy and uniqueness constraints, hashes
// the password, and inserts the record. Policy violations and duplicates are
// reported as field errors on the result.
func (s *BunCredentialStore) CreateUser(ctx context.Context, user *User, password string) (*RegistrationResult, error) {
	if user == nil {
		return nil, goerrors.New("user record is required", goerrors.CategoryBadInput)
	}

	if err := validatePasswordPolicy(password); err != nil {
		return RegistrationFailure("password", err.Error()), nil
	}

	if user.Username == "" {
		return RegistrationFailure("username", "username is required"), nil
	}

	fieldErrors := map[string]string{}

	if taken, err := s.usernameTaken(ctx, user.Username); err != nil {
		return nil, err
	} else if taken {
		fieldErrors["username"] = "username is already taken"
	}

	if user.Email != "" {
		if taken, err := s.emailTaken(ctx, user.Email); err != nil {
			return nil, err
		} else if taken {
			fieldErrors["email"] = "email is already registered"
		}
	}

	if len(fieldErrors) > 0 {
		return &RegistrationResult{Succeeded: false, FieldErrors: fieldErrors}, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	user.PasswordHash = hash

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err := s.repo.Users().CreateTx(ctx, tx, user)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}
		user = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &RegistrationResult{Succeeded: true, User: user}, nil
}

// AddRoles assigns the named roles to the user, appending after any existing
// memberships so enumeration order stays assignment order. Unknown role
// names are field errors; no membership is written when any name is unknown.
func (s *BunCredentialStore) AddRoles(ctx context.Context, user *User, roleNames []string) (*RegistrationResult, error) {
	if user == nil {
		return nil, ErrIdentityNotFound
	}

	if len(roleNames) == 0 {
		return &RegistrationResult{Succeeded: true, User: user}, nil
	}

	resolved := make([]*Role, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := s.repo.Roles().GetByName(ctx, name)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return RegistrationFailure("roles", "unknown role: "+name), nil
			}
			return nil, err
		}
		resolved = append(resolved, role)
	}

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		position, err := s.nextRolePosition(ctx, tx, user)
		if err != nil {
			return err
		}

		for i, role := range resolved {
			membership := &UserRole{
				ID:       uuid.New(),
				UserID:   user.ID,
				RoleID:   role.ID,
				Position: position + i,
			}
			if _, err := tx.NewInsert().Model(membership).Exec(ctx); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryConflict, "could not assign role")
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &RegistrationResult{Succeeded: true, User: user}, nil
}

func (s *BunCredentialStore) nextRolePosition(ctx context.Context, tx bun.IDB, user *User) (int, error) {
	count, err := tx.NewSelect().
		Model((*UserRole)(nil)).
		Where("?TableAlias.user_id = ?", user.ID).
		Count(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to count role memberships")
	}
	return count, nil
}

func (s *BunCredentialStore) usernameTaken(ctx context.Context, username string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.username = ?", username).
		Exists(ctx)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username uniqueness")
	}
	return exists, nil
}

func (s *BunCredentialStore) emailTaken(ctx context.Context, email string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.email = ?", email).
		Exists(ctx)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
	}
	return exists, nil
}

// validatePasswordPolicy mirrors the account policy: at least six characters
// with at least one digit.
func validatePasswordPolicy(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
		validation.Match(passwordDigit).Error("password must contain at least one digit"),
	)
}

var _ CredentialStore = (*BunCredentialStore)(nil)
