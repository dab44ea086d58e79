package convo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"votebot/entity"
)

var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"1-2-2006",
	"2006-01-02",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
}

// ValidateDate normalizes an answered date to the canonical YYYY/MM/DD form
// the form-filling service expects.
func ValidateDate(_ context.Context, body string) (any, []Assignment, error) {
	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, body)
		if err == nil {
			return fmt.Sprintf("%04d/%02d/%02d", date.Year(), date.Month(), date.Day()), nil, nil
		}
	}
	return nil, nil, Recoverable("We couldn't read that date")
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(_ context.Context, body string) (any, []Assignment, error) {
	if !emailRe.MatchString(body) {
		return nil, nil, Recoverable("Please enter your email address")
	}
	return body, nil, nil
}

// ValidateBoolean stores whether the answer parses as a yes. It never fails:
// anything unrecognized simply counts as no.
func ValidateBoolean(_ context.Context, body string) (any, []Assignment, error) {
	return IsYes(body), nil, nil
}

const ineligibleMsg = "Sorry, you are not eligible to vote in your state"

// ValidateBooleanYes accepts only a yes. An unparseable answer re-prompts;
// an explicit no ends the conversation as ineligible.
func ValidateBooleanYes(_ context.Context, body string) (any, []Assignment, error) {
	yes, no := IsYes(body), IsNo(body)
	if !yes && !no {
		return nil, nil, Recoverable("Please answer yes or no")
	}
	if !yes {
		return nil, nil, Terminal(ineligibleMsg)
	}
	return true, nil, nil
}

// ValidateBooleanNo is the mirror: only a no may continue.
func ValidateBooleanNo(_ context.Context, body string) (any, []Assignment, error) {
	yes, no := IsYes(body), IsNo(body)
	if !yes && !no {
		return nil, nil, Recoverable("Please answer yes or no")
	}
	if !no {
		return nil, nil, Terminal(ineligibleMsg)
	}
	return false, nil, nil
}

func ValidateGender(_ context.Context, body string) (any, []Assignment, error) {
	gender := Gender(body)
	if gender == "" {
		return nil, nil, Recoverable("Please enter your gender as male or female")
	}
	return gender, nil, nil
}

var ssnRe = regexp.MustCompile(`[0-9]{3}-?[0-9]{2}-?[0-9]{4}`)

func ValidateSSN(_ context.Context, body string) (any, []Assignment, error) {
	ssn := ssnRe.FindString(body)
	if ssn == "" {
		return nil, nil, Recoverable("Please enter your SSN")
	}
	return ssn, nil, nil
}

var zipRe = regexp.MustCompile(`^[0-9]{5}$`)

// NewZipValidator checks the zip syntax and looks the code up. A code mapping
// to exactly one place also fills in the user's city and state; zero or
// several matches store just the code and leave them for the next questions.
// Only a missing record is the user's problem; a failing lookup backend
// propagates so the engine treats it as an internal failure.
func NewZipValidator(lookup ZipLookup) Validator {
	return func(ctx context.Context, body string) (any, []Assignment, error) {
		// "90210-1234" → "90210"
		zip, _, _ := strings.Cut(body, "-")
		if !zipRe.MatchString(zip) {
			return nil, nil, Recoverable("That zip code isn't valid")
		}

		zipdata, err := lookup.FindZip(ctx, zip)
		if errors.Is(err, entity.ErrZipNotFound) {
			return nil, nil, Recoverable("We couldn't find that zip code")
		}
		if err != nil {
			return nil, nil, err
		}

		var extra []Assignment
		if len(zipdata.Places) == 1 {
			place := zipdata.Places[0]
			if place.City != "" {
				extra = append(extra, NewAssignment("user.settings.city", place.City))
			}
			if place.State != "" {
				extra = append(extra, NewAssignment("user.settings.state", place.State))
			}
		}
		return zipdata.Code, extra, nil
	}
}
