package tag

// Tag 标签表
// name 和 slug 各自全局唯一，slug 冲突时直接拒绝创建（不加序号），
// 与文章 slug 的自动加后缀策略不同
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
}
