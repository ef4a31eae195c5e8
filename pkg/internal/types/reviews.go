package types

// ReviewInput 发表评论的请求体.
type ReviewInput struct {
	BookID  uint   `json:"book_id" rule:"required"`
	User    string `json:"user"    rule:"required"`
	Rating  int    `json:"rating"  rule:"min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewUpdateInput 更新评论（审核/修改内容）的请求体.
type ReviewUpdateInput struct {
	Rating   *int    `json:"rating"   rule:"omitempty,min=1,max=5"`
	Comment  *string `json:"comment"`
	Approved *bool   `json:"approved"`
}
