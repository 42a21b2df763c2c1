// 初始化数据库基础数据：模块、管理员账号、标签和示例文章。
// 可重复执行，已存在的数据会跳过。
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/config"
	"github.com/fcbarera0210/biomachinis/internal/database"
	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	postModel "github.com/fcbarera0210/biomachinis/internal/model/post"
	tagModel "github.com/fcbarera0210/biomachinis/internal/model/tag"
	userModel "github.com/fcbarera0210/biomachinis/internal/model/user"
	"github.com/fcbarera0210/biomachinis/internal/slug"
)

const (
	adminEmail    = "admin@biomachinis.com"
	adminPassword = "admin123"
)

func main() {
	fakePosts := flag.Int("fake-posts", 0, "额外生成的演示文章数量")
	flag.Parse()

	config.MustLoad("config.yaml")
	database.InitDatabase()
	db := database.GetDB()

	admin, err := seedAdmin(db)
	if err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	tags, err := seedTags(db)
	if err != nil {
		log.Fatalf("创建标签失败: %v", err)
	}

	if err := seedPosts(db, admin, tags); err != nil {
		log.Fatalf("创建示例文章失败: %v", err)
	}

	if *fakePosts > 0 {
		if err := seedFakePosts(db, admin, tags, *fakePosts); err != nil {
			log.Fatalf("生成演示文章失败: %v", err)
		}
	}

	log.Println("seed 完成")
	log.Printf("管理员账号: %s / %s", adminEmail, adminPassword)
}

// seedAdmin 创建管理员账号并授予全部模块
func seedAdmin(db *gorm.DB) (*userModel.User, error) {
	var admin userModel.User
	err := db.Where("email = ?", adminEmail).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin = userModel.User{
		Name:         "Admin Usuario",
		Email:        adminEmail,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		var modules []moduleModel.Module
		if err := tx.Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			um := moduleModel.UserModule{UserID: admin.ID, ModuleID: m.ID}
			if err := tx.Create(&um).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("管理员已创建: %s", adminEmail)
	return &admin, nil
}

func seedTags(db *gorm.DB) ([]tagModel.Tag, error) {
	names := []string{"CrossFit", "Calistenia", "Powerlifting", "Nutrición"}

	tags := make([]tagModel.Tag, 0, len(names))
	for _, name := range names {
		t := tagModel.Tag{Name: name, Slug: slug.Slugify(name)}
		if err := db.Where(tagModel.Tag{Name: name}).FirstOrCreate(&t).Error; err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func seedPosts(db *gorm.DB, admin *userModel.User, tags []tagModel.Tag) error {
	samples := []struct {
		title   string
		excerpt string
		body    string
		cover   string
		tagIdx  []int
	}{
		{
			title:   "Guía Completa de CrossFit para Principiantes",
			excerpt: "Aprende los fundamentos del CrossFit y cómo comenzar tu viaje hacia una mejor condición física.",
			body:    "El CrossFit es un programa de entrenamiento de fuerza y acondicionamiento que combina ejercicios de alta intensidad con movimientos funcionales.",
			cover:   "https://images.unsplash.com/photo-1540575861501-7cf05a4b125a?auto=format&fit=crop&w=800&q=80",
			tagIdx:  []int{0, 3},
		},
		{
			title:   "Calistenia: Entrenamiento con el Peso Corporal",
			excerpt: "Descubre cómo la calistenia puede transformar tu cuerpo usando solo tu peso corporal.",
			body:    "La calistenia es una forma de entrenamiento que utiliza el peso del cuerpo para desarrollar fuerza, flexibilidad y resistencia.",
			cover:   "https://images.unsplash.com/photo-1522071820081-009f0129c71c?auto=format&fit=crop&w=800&q=80",
			tagIdx:  []int{1, 3},
		},
	}

	for _, s := range samples {
		postSlug := slug.Slugify(s.title)

		var count int64
		if err := db.Model(&postModel.Post{}).Where("slug = ?", postSlug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		excerpt := s.excerpt
		cover := s.cover
		p := postModel.Post{
			Title:         s.title,
			Slug:          postSlug,
			Excerpt:       &excerpt,
			Content:       editorDoc(s.body),
			CoverImageURL: &cover,
			Published:     true,
			AuthorID:      admin.ID,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			for _, idx := range s.tagIdx {
				pt := postModel.PostTag{PostID: p.ID, TagID: tags[idx].ID}
				if err := tx.Create(&pt).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("示例文章已创建: %s", p.Slug)
	}
	return nil
}

// seedFakePosts 批量生成演示文章，用于本地开发时填充列表页
func seedFakePosts(db *gorm.DB, admin *userModel.User, tags []tagModel.Tag, n int) error {
	var existing []string
	if err := db.Model(&postModel.Post{}).Pluck("slug", &existing).Error; err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		title := gofakeit.Sentence(gofakeit.Number(4, 8))
		postSlug := slug.ResolveUnique(slug.Slugify(title), existing)
		existing = append(existing, postSlug)

		excerpt := gofakeit.Sentence(12)
		p := postModel.Post{
			Title:     title,
			Slug:      postSlug,
			Excerpt:   &excerpt,
			Content:   editorDoc(gofakeit.Paragraph(2, 4, 10, " ")),
			Published: gofakeit.Bool(),
			Views:     uint(gofakeit.Number(0, 5000)),
			AuthorID:  admin.ID,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			// 随机挂 1~2 个标签
			picked := gofakeit.Number(0, len(tags)-1)
			pt := postModel.PostTag{PostID: p.ID, TagID: tags[picked].ID}
			return tx.Create(&pt).Error
		})
		if err != nil {
			return err
		}
	}

	log.Printf("已生成 %d 篇演示文章", n)
	return nil
}

// editorDoc 包装成前端富文本编辑器的文档格式
func editorDoc(text string) string {
	doc := map[string]any{
		"type": "doc",
		"content": []map[string]any{
			{
				"type": "paragraph",
				"content": []map[string]any{
					{"type": "text", "text": text},
				},
			},
		},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("编码富文本失败: %v", err))
	}
	return string(b)
}
