package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// boardStateboard is the sentinel board value that selects the stateboard
// partition; every other value routes to the CBSE partition.
const boardStateboard = "stateboard"

// Board identifies which category-pointer partition a document belongs to.
// It is resolved exactly once at ingestion time so deletion and listing never
// have to re-derive the partition from the raw board string.
type Board int

const (
	BoardStateboard Board = iota
	BoardCBSE
)

func ParseBoard(s string) Board {
	if s == boardStateboard {
		return BoardStateboard
	}
	return BoardCBSE
}

func (b Board) String() string {
	if b == BoardStateboard {
		return "stateboard"
	}
	return "cbse"
}

// Document is the canonical record, keyed logically by DocumentID (not the
// store's own _id). DocumentID is immutable once assigned.
type Document struct {
	DocumentID string    `bson:"document_id" json:"document_id"`
	Filename   string    `bson:"filename" json:"filename"`
	Board      string    `bson:"board" json:"board"`
	Class      string    `bson:"class" json:"class"`
	Subject    string    `bson:"subject" json:"subject"`
	Group      string    `bson:"group" json:"group"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// CategoryPointer indexes a document id by curriculum metadata inside one of
// the two board partitions. Its lifecycle mirrors the Document's.
type CategoryPointer struct {
	Class      string `bson:"class" json:"class"`
	Subject    string `bson:"subject" json:"subject"`
	Group      string `bson:"group" json:"group"`
	DocumentID string `bson:"document_id" json:"document_id"`
}

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
