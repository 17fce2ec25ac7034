package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifiesOwnHash(t *testing.T) {
	passwords := []string{"secret123", "admin123", "päss wörd", "correct horse battery staple"}

	for _, password := range passwords {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		require.NotEqual(t, password, hash)
		require.True(t, CheckPassword(password, hash))
	}
}

func TestHashPassword_SaltsPerCall(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, CheckPassword("secret123", first))
	require.True(t, CheckPassword("secret123", second))
}

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, DefaultHashCost, cost)
}

func TestCheckPassword_RejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	require.False(t, CheckPassword("secret124", hash))
	require.False(t, CheckPassword("", hash))
	require.False(t, CheckPassword("SECRET123", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	require.False(t, CheckPassword("secret123", "not-a-bcrypt-hash"))
}

func TestPasswordPolicy_Validate(t *testing.T) {
	tests := []struct {
		name     string
		policy   PasswordPolicy
		password string
		wantErr  bool
	}{
		{"exactly at minimum", DefaultPasswordPolicy(), "abcdef", false},
		{"one below minimum", DefaultPasswordPolicy(), "abcde", true},
		{"empty", DefaultPasswordPolicy(), "", true},
		{"multibyte counts characters not bytes", DefaultPasswordPolicy(), "ññññññ", false},
		{"custom minimum", PasswordPolicy{MinLength: 10}, "short", true},
		{"zero minimum falls back to default", PasswordPolicy{}, "abcde", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate(tt.password)
			if tt.wantErr {
				var tooShort ErrPasswordTooShort
				require.ErrorAs(t, err, &tooShort)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
