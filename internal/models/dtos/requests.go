package dtos

type CreateInvoiceReq struct {
	Plan string `json:"plan"`
}
