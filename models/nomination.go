package models

import "time"

// AwardCategory is one of the fixed award categories
type AwardCategory string

const (
	AwardCategoryExcellence AwardCategory = "Excellence"
	AwardCategoryLifetime   AwardCategory = "Lifetime"
	AwardCategoryInnovation AwardCategory = "Innovation"
	AwardCategoryService    AwardCategory = "Service"
)

// AwardCategories lists the accepted categories in display order
var AwardCategories = []AwardCategory{
	AwardCategoryExcellence,
	AwardCategoryLifetime,
	AwardCategoryInnovation,
	AwardCategoryService,
}

// NominationStatus represents the review status of a nomination
type NominationStatus string

const (
	NominationStatusPending  NominationStatus = "pending"
	NominationStatusApproved NominationStatus = "approved"
	NominationStatusRejected NominationStatus = "rejected"
)

// PersonInfo is a nominee or nominator as stored. Optional values are nil
// when absent so they are omitted from the stored item.
type PersonInfo struct {
	Name         string  `json:"name" dynamodbav:"name"`
	Email        *string `json:"email,omitempty" dynamodbav:"email,omitempty"`
	Organization *string `json:"organization,omitempty" dynamodbav:"organization,omitempty"`
	Position     *string `json:"position,omitempty" dynamodbav:"position,omitempty"`
}

// Nomination is a stored award nomination
type Nomination struct {
	ID             string           `json:"id" dynamodbav:"id"`
	AwardID        string           `json:"awardId" dynamodbav:"awardId"`
	AwardCategory  AwardCategory    `json:"awardCategory" dynamodbav:"awardCategory"`
	NomineeInfo    PersonInfo       `json:"nomineeInfo" dynamodbav:"nomineeInfo"`
	NominatorInfo  PersonInfo       `json:"nominatorInfo" dynamodbav:"nominatorInfo"`
	NominationText string           `json:"nominationText" dynamodbav:"nominationText"`
	AgreedToTerms  bool             `json:"agreedToTerms" dynamodbav:"agreedToTerms"`
	Status         NominationStatus `json:"status" dynamodbav:"status"`
	CreatedAt      time.Time        `json:"createdAt" dynamodbav:"createdAt"`
}
