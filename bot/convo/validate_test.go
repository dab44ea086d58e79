package convo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votebot/entity"
)

func requireRecoverable(t *testing.T, err error) *DataError {
	t.Helper()
	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	require.False(t, dataErr.End, "expected a recoverable error, got terminal: %s", dataErr.Msg)
	return dataErr
}

func requireTerminal(t *testing.T, err error) *DataError {
	t.Helper()
	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	require.True(t, dataErr.End, "expected a terminal error, got recoverable: %s", dataErr.Msg)
	return dataErr
}

func TestValidateDate(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		in   string
		want string
	}{
		{"6/15/1994", "1994/06/15"},
		{"06/15/1994", "1994/06/15"},
		{"6-15-1994", "1994/06/15"},
		{"1994-06-15", "1994/06/15"},
		{"June 15, 1994", "1994/06/15"},
		{"Jun 15, 1994", "1994/06/15"},
		{"1/2/98", "1998/01/02"},
	}
	for _, tc := range cases {
		value, extra, err := ValidateDate(ctx, tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, value, "input %q", tc.in)
		assert.Empty(t, extra)
	}

	for _, in := range []string{"yesterday", "15/6/1994", "june", ""} {
		_, _, err := ValidateDate(ctx, in)
		requireRecoverable(t, err)
	}
}

func TestValidateEmail(t *testing.T) {
	ctx := context.Background()

	value, _, err := ValidateEmail(ctx, "voter@example.org")
	require.NoError(t, err)
	assert.Equal(t, "voter@example.org", value)

	for _, in := range []string{"not an email", "voter@", "@example.org", "voter@example"} {
		_, _, err := ValidateEmail(ctx, in)
		requireRecoverable(t, err)
	}
}

func TestValidateBoolean(t *testing.T) {
	ctx := context.Background()

	cases := map[string]bool{
		"yes":    true,
		"Yup":    true,
		"  ok  ": true,
		"no":     false,
		"nah":    false,
		"banana": false,
	}
	for in, want := range cases {
		value, _, err := ValidateBoolean(ctx, in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, value, "input %q", in)
	}
}

func TestValidateBooleanYes(t *testing.T) {
	ctx := context.Background()

	value, _, err := ValidateBooleanYes(ctx, "yeah")
	require.NoError(t, err)
	assert.Equal(t, true, value)

	_, _, err = ValidateBooleanYes(ctx, "maybe")
	requireRecoverable(t, err)

	_, _, err = ValidateBooleanYes(ctx, "no")
	requireTerminal(t, err)
}

func TestValidateBooleanNo(t *testing.T) {
	ctx := context.Background()

	value, _, err := ValidateBooleanNo(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, false, value)

	_, _, err = ValidateBooleanNo(ctx, "dunno")
	requireRecoverable(t, err)

	_, _, err = ValidateBooleanNo(ctx, "yes")
	requireTerminal(t, err)
}

func TestValidateGender(t *testing.T) {
	ctx := context.Background()

	for in, want := range map[string]string{
		"M": "male", "guy": "male", "Woman": "female", "F": "female",
	} {
		value, _, err := ValidateGender(ctx, in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, value, "input %q", in)
	}

	_, _, err := ValidateGender(ctx, "xyzzy")
	requireRecoverable(t, err)
}

func TestValidateSSN(t *testing.T) {
	ctx := context.Background()

	for in, want := range map[string]string{
		"123-45-6789":         "123-45-6789",
		"123456789":           "123456789",
		"my ssn is 123456789": "123456789",
	} {
		value, _, err := ValidateSSN(ctx, in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, value, "input %q", in)
	}

	_, _, err := ValidateSSN(ctx, "12-345")
	requireRecoverable(t, err)
}

type fakeZips struct {
	zips map[string]*entity.Zip
	err  error
}

func (f *fakeZips) FindZip(_ context.Context, code string) (*entity.Zip, error) {
	if f.err != nil {
		return nil, f.err
	}
	zip, ok := f.zips[code]
	if !ok {
		return nil, entity.ErrZipNotFound
	}
	return zip, nil
}

func TestZipValidator(t *testing.T) {
	ctx := context.Background()
	validate := NewZipValidator(&fakeZips{zips: map[string]*entity.Zip{
		"90210": {Code: "90210", Places: []entity.Place{{City: "Beverly Hills", State: "CA"}}},
		"10001": {Code: "10001", Places: []entity.Place{
			{City: "New York", State: "NY"},
			{City: "Manhattan", State: "NY"},
		}},
	}})

	t.Run("single place fills city and state", func(t *testing.T) {
		value, extra, err := validate(ctx, "90210")
		require.NoError(t, err)
		assert.Equal(t, "90210", value)
		require.Len(t, extra, 2)
		assert.Equal(t, Assignment{Record: "user", Path: "settings.city", Value: "Beverly Hills"}, extra[0])
		assert.Equal(t, Assignment{Record: "user", Path: "settings.state", Value: "CA"}, extra[1])
	})

	t.Run("plus-four suffix is stripped", func(t *testing.T) {
		value, _, err := validate(ctx, "90210-1234")
		require.NoError(t, err)
		assert.Equal(t, "90210", value)
	})

	t.Run("ambiguous zip stores only the code", func(t *testing.T) {
		value, extra, err := validate(ctx, "10001")
		require.NoError(t, err)
		assert.Equal(t, "10001", value)
		assert.Empty(t, extra)
	})

	t.Run("bad syntax re-prompts", func(t *testing.T) {
		_, _, err := validate(ctx, "abc")
		requireRecoverable(t, err)
	})

	t.Run("unknown zip re-prompts", func(t *testing.T) {
		_, _, err := validate(ctx, "99999")
		requireRecoverable(t, err)
	})

	t.Run("lookup outage is not the user's fault", func(t *testing.T) {
		down := errors.New("mongodb connect error: connection refused")
		broken := NewZipValidator(&fakeZips{err: down})

		_, _, err := broken(ctx, "90210")
		require.ErrorIs(t, err, down)

		var dataErr *DataError
		require.False(t, errors.As(err, &dataErr),
			"a storage failure must not be reported as a bad answer")
	})
}
