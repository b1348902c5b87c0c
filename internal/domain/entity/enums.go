package entity

import "sort"

// Stage is a tournament phase.
type Stage string

const (
	StageOne   Stage = "STAGE_1"
	StageTwo   Stage = "STAGE_2"
	StageThree Stage = "STAGE_3"
	StageFour  Stage = "STAGE_4"
	StageFinal Stage = "FINAL"
)

var stageLabels = map[Stage]string{
	StageOne:   "1. Etap",
	StageTwo:   "2. Etap",
	StageThree: "3. Etap",
	StageFour:  "4. Etap",
	StageFinal: "Final",
}

// Stages lists every stage in tournament order.
func Stages() []Stage {
	return []Stage{StageOne, StageTwo, StageThree, StageFour, StageFinal}
}

func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// Label is the display name shown to organisers.
func (s Stage) Label() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return string(s)
}

// AgeGroup is a birth-year tag such as Y2012.
type AgeGroup string

var ageGroups = []AgeGroup{
	"Y2012", "Y2013", "Y2014", "Y2015", "Y2016", "Y2017",
	"Y2018", "Y2019", "Y2020", "Y2021", "Y2022",
}

// AgeGroups lists the accepted tags, oldest first.
func AgeGroups() []AgeGroup {
	out := make([]AgeGroup, len(ageGroups))
	copy(out, ageGroups)
	return out
}

func (a AgeGroup) Valid() bool {
	for _, g := range ageGroups {
		if g == a {
			return true
		}
	}
	return false
}

// PaymentMethod is how a payment was collected.
type PaymentMethod string

const (
	PaymentMethodPOS          PaymentMethod = "POS"
	PaymentMethodIBAN         PaymentMethod = "IBAN"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodHandDelivery PaymentMethod = "HAND_DELIVERY"
	PaymentMethodMailOrder    PaymentMethod = "MAIL_ORDER"
	PaymentMethodHotel        PaymentMethod = "HOTEL_PAYMENT"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodPOS:          "POS Ödemesi",
	PaymentMethodIBAN:         "İBAN Havalesi",
	PaymentMethodCash:         "Nakit Ödeme",
	PaymentMethodHandDelivery: "Elden Ödeme",
	PaymentMethodMailOrder:    "Mail Order",
	PaymentMethodHotel:        "Otele Ödeme",
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

func (m PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[m]; ok {
		return label
	}
	return string(m)
}

// ApplicationStatus is the review state of a TeamApplication.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// AgeGroupCounts maps an age group to its number of sub-teams.
type AgeGroupCounts map[AgeGroup]int

// Total is the number of sub-teams across all age groups.
func (c AgeGroupCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Keys returns the age groups in sorted order.
func (c AgeGroupCounts) Keys() []AgeGroup {
	keys := make([]AgeGroup, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns an independent copy, never nil.
func (c AgeGroupCounts) Clone() AgeGroupCounts {
	out := make(AgeGroupCounts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
