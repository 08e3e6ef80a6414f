package dto

import (
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type CreateUserDTO struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type UploadDocumentsDTO struct {
	Documents []DocumentDTO `json:"documents"`
}

type DocumentDTO struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

func (d UploadDocumentsDTO) ToDocuments() []model.Document {
	docs := make([]model.Document, 0, len(d.Documents))
	for _, doc := range d.Documents {
		docs = append(docs, model.Document{
			Name:      doc.Name,
			Reference: doc.Reference,
		})
	}
	return docs
}

type RoleResponseDTO struct {
	Role string `json:"role"`
}
