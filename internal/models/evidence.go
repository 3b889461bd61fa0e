package models

import (
	"time"
)

// DocumentType classifies an evidence document
type DocumentType string

const (
	DocumentTypeReport    DocumentType = "report"
	DocumentTypeDocument  DocumentType = "document"
	DocumentTypeTestimony DocumentType = "testimony"
	DocumentTypeMedia     DocumentType = "media"
	DocumentTypeOther     DocumentType = "other"
)

// VerificationStatus tracks how far an evidence document has been verified
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationPending  VerificationStatus = "pending"
	VerificationDisputed VerificationStatus = "disputed"
)

// ValidDocumentTypes defines allowed document types
var ValidDocumentTypes = map[DocumentType]bool{
	DocumentTypeReport:    true,
	DocumentTypeDocument:  true,
	DocumentTypeTestimony: true,
	DocumentTypeMedia:     true,
	DocumentTypeOther:     true,
}

// ValidVerificationStatuses defines allowed verification statuses
var ValidVerificationStatuses = map[VerificationStatus]bool{
	VerificationVerified: true,
	VerificationPending:  true,
	VerificationDisputed: true,
}

// EvidenceDocument represents a report, testimony or other sourced document
type EvidenceDocument struct {
	ID                 string             `json:"id" db:"id"`
	Title              string             `json:"title" db:"title"`
	Description        string             `json:"description" db:"description"`
	DocumentType       DocumentType       `json:"documentType" db:"document_type"`
	Source             string             `json:"source" db:"source"`
	SourceURL          string             `json:"sourceUrl,omitempty" db:"source_url"`
	VerificationStatus VerificationStatus `json:"verificationStatus" db:"verification_status"`
	Tags               []string           `json:"tags" db:"-"` // Stored as JSON string in DB
	Content            string             `json:"content" db:"content"`
	PublishedAt        time.Time          `json:"publishedAt" db:"published_at"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`
	Category           string             `json:"category" db:"category"`
}

// EvidenceDocumentWithCategory is an evidence document with its resolved category snapshot
type EvidenceDocumentWithCategory struct {
	EvidenceDocument
	CategoryRef *Category `json:"categoryRef"`
}

// EvidenceFilter narrows evidence listings
type EvidenceFilter struct {
	Category           string
	DocumentType       DocumentType
	VerificationStatus VerificationStatus
	Limit              int
}
