package constants

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	ActorKey     ContextKey = "actor"
)

// 角色使用固定字串，統一使用小寫
const (
	RoleUser    = "user"
	RolePremium = "premium"
	RoleAdmin   = "admin"
)

// 升級 premium 必備文件
var RequiredDocuments = []string{
	DocumentIdentification,
	DocumentAddress,
	DocumentAccount,
}

const (
	DocumentIdentification = "identificacion"
	DocumentAddress        = "domicilio"
	DocumentAccount        = "cuenta"
	DocumentProfileImage   = "profileImage"
	DocumentProductImage   = "productImage"
)

// 文件上傳允許的欄位名稱
var AllowedDocumentKeys = []string{
	DocumentIdentification,
	DocumentAddress,
	DocumentAccount,
	DocumentProfileImage,
	DocumentProductImage,
}
