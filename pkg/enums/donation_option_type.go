package enums

import "fmt"

// DonationOptionType groups the preset giving options shown on the site.
type DonationOptionType string

const (
	DonationOptionContribution DonationOptionType = "contribution"
	DonationOptionMembership   DonationOptionType = "membership"
	DonationOptionSponsorship  DonationOptionType = "sponsorship"
)

var validDonationOptionTypes = []DonationOptionType{
	DonationOptionContribution,
	DonationOptionMembership,
	DonationOptionSponsorship,
}

func (d DonationOptionType) String() string {
	return string(d)
}

func (d DonationOptionType) IsValid() bool {
	for _, candidate := range validDonationOptionTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDonationOptionType converts raw input into a DonationOptionType.
func ParseDonationOptionType(value string) (DonationOptionType, error) {
	for _, candidate := range validDonationOptionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid donation option type %q", value)
}
