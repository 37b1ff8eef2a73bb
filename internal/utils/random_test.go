package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRomanize(t *testing.T) {
	assert.Equal(t, "Xiaoming", Romanize("小明"))
	assert.Equal(t, "Wang", Romanize("王"))
	assert.Equal(t, "", Romanize(""))
}

func TestGenerateUsernameFromChineseName(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+[0-9]{1,3}$`)
	for i := 0; i < 50; i++ {
		username := GenerateUsernameFromChineseName("张伟")
		assert.Regexp(t, pattern, username)
		assert.True(t, strings.HasPrefix(username, "z"))
	}
}

func TestGenerateRandomUser(t *testing.T) {
	user := GenerateRandomUser("example.com")
	require.NotNil(t, user)
	assert.NotEmpty(t, user.Username)
	assert.Equal(t, user.Username+"@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestGenerateRandomEmployee(t *testing.T) {
	emailPattern := regexp.MustCompile(`^[a-z]+\.[a-z]+[0-9]{4}@example\.com$`)
	for i := 0; i < 50; i++ {
		e := GenerateRandomEmployee("example.com")
		assert.Regexp(t, `^[A-Z][a-z]+$`, e.FirstName)
		assert.Regexp(t, `^[A-Z][a-z]+$`, e.LastName)
		assert.Regexp(t, emailPattern, e.Email)
		assert.Contains(t, genders, e.Gender)
		assert.GreaterOrEqual(t, e.Salary, float64(minSalary))
		assert.LessOrEqual(t, e.Salary, float64(maxSalary))
	}
}
