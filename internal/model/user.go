package model

type User struct {
	UserID    uint       `gorm:"primaryKey" json:"user_id"`
	UserName  string     `gorm:"not null;type:varchar(50)" json:"user_name"`
	UserEmail string     `gorm:"unique;not null;type:varchar(100)" json:"user_email"`
	Role      string     `gorm:"not null;type:varchar(20);default:user" json:"role"`
	Status    string     `gorm:"type:varchar(50)" json:"status"`
	Documents []Document `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"documents"`
	BaseModel
}

// Document 只保留文件名稱與存放參照, 檔案本體由上傳層處理
type Document struct {
	DocumentID uint   `gorm:"primaryKey" json:"document_id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	Name       string `gorm:"not null;type:varchar(50)" json:"name"`
	Reference  string `gorm:"not null;type:varchar(255)" json:"reference"`
	BaseModel
}

// Actor 為請求當下的操作者資訊, 由 auth layer 提供
type Actor struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Purchaser 購買人以 email 為主, 沒有 email 用顯示名稱
func (a Actor) Purchaser() string {
	if a.Email != "" {
		return a.Email
	}
	return a.Name
}
