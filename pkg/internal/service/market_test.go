package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/agrivault/pkg/configs"
	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/service"
	dbc "github.com/yeisme/agrivault/pkg/internal/storage/db"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// newTestMarket 用内存 SQLite 搭一个市场服务底座.
func newTestMarket(t *testing.T) *service.MarketService {
	t.Helper()

	// 加载默认配置（分页等参数）
	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库在连接间不共享，限制为单连接
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&model.Book{},
		&model.Category{},
		&model.Review{},
		&model.SubscriptionPlan{},
		&model.UserSubscription{},
		&model.WalletTransaction{},
		&model.Curriculum{},
		&model.WebsiteContent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return service.NewMarketService(&dbc.Client{DB: gdb})
}

func TestBookCRUDAndListFilters(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	books := service.NewBookService(market)
	categories := service.NewCategoryService(market)

	cat, err := categories.CreateCategory(ctx, &types.CategoryInput{Name: "Crop Farming"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if cat.Slug != "crop-farming" {
		t.Errorf("slug = %q, want crop-farming", cat.Slug)
	}

	published := []types.BookInput{
		{Title: "Soil Basics", Author: "A. Ngugi", Language: "en", Status: "published", CategoryID: &cat.ID, Price: 9.5},
		{Title: "Irrigation Handbook", Author: "A. Ngugi", Language: "sw", Status: "published", Price: 12},
	}
	for i := range published {
		if _, err := books.CreateBook(ctx, &published[i]); err != nil {
			t.Fatalf("create book: %v", err)
		}
	}

	draft, err := books.CreateBook(ctx, &types.BookInput{Title: "Unfinished"})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	if draft.Status != model.BookStatusDraft {
		t.Errorf("default status = %q, want draft", draft.Status)
	}

	// 默认只列已发布
	resp, err := books.ListBooks(ctx, &types.ListBooksQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if resp.Pagination.Total != 2 {
		t.Errorf("published total = %d, want 2", resp.Pagination.Total)
	}

	// status=all 列出全部
	resp, err = books.ListBooks(ctx, &types.ListBooksQuery{Status: "all"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if resp.Pagination.Total != 3 {
		t.Errorf("all total = %d, want 3", resp.Pagination.Total)
	}

	// 按分类过滤并预加载分类
	resp, err = books.ListBooks(ctx, &types.ListBooksQuery{CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}

	if len(resp.Books) != 1 || resp.Books[0].Title != "Soil Basics" {
		t.Fatalf("category filter returned %d books", len(resp.Books))
	}

	if resp.Books[0].Category == nil || resp.Books[0].Category.Name != "Crop Farming" {
		t.Error("category should be preloaded")
	}

	// 标题模糊搜索
	resp, err = books.ListBooks(ctx, &types.ListBooksQuery{Search: "irrigation"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(resp.Books) != 1 {
		t.Errorf("search returned %d books, want 1", len(resp.Books))
	}

	// 更新
	updated, err := books.UpdateBook(ctx, draft.ID, &types.BookInput{Title: "Finished", Status: "published"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Title != "Finished" || updated.Status != "published" {
		t.Errorf("updated = %+v", updated)
	}

	// 软删除后查不到
	if err := books.DeleteBook(ctx, draft.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := books.GetBook(ctx, draft.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("get deleted = %v, want record not found", err)
	}
}

func TestCategoryDeleteDetachesBooks(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	books := service.NewBookService(market)
	categories := service.NewCategoryService(market)

	cat, err := categories.CreateCategory(ctx, &types.CategoryInput{Name: "Livestock"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	book, err := books.CreateBook(ctx, &types.BookInput{Title: "Goat Keeping", CategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}

	if err := categories.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	got, err := books.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}

	if got.CategoryID != nil {
		t.Errorf("book should be detached from deleted category, got %v", *got.CategoryID)
	}
}

func TestReviewApprovalFlow(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	books := service.NewBookService(market)
	reviews := service.NewReviewService(market)

	book, err := books.CreateBook(ctx, &types.BookInput{Title: "Beekeeping"})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}

	review, err := reviews.CreateReview(ctx, &types.ReviewInput{
		BookID: book.ID, User: "amina", Rating: 5, Comment: "very practical",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	if review.Approved {
		t.Error("new review should start unapproved")
	}

	// 书不存在
	if _, err := reviews.CreateReview(ctx, &types.ReviewInput{BookID: 9999, User: "amina", Rating: 3}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("review for missing book = %v, want record not found", err)
	}

	// 未审核的默认不可见
	visible, err := reviews.ListReviews(ctx, book.ID, false)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}

	if len(visible) != 0 {
		t.Errorf("unapproved review should be hidden, got %d", len(visible))
	}

	approved := true
	if _, err := reviews.UpdateReview(ctx, review.ID, &types.ReviewUpdateInput{Approved: &approved}); err != nil {
		t.Fatalf("approve review: %v", err)
	}

	visible, err = reviews.ListReviews(ctx, book.ID, false)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}

	if len(visible) != 1 {
		t.Errorf("approved review should be visible, got %d", len(visible))
	}
}

func TestSubscribeReplacesActiveSubscription(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	subs := service.NewSubscriptionService(market)

	monthly, err := subs.CreatePlan(ctx, &types.PlanInput{Name: "Monthly", Price: 5, DurationDays: 30})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	yearly, err := subs.CreatePlan(ctx, &types.PlanInput{Name: "Yearly", Price: 50, DurationDays: 365})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	if _, err := subs.Subscribe(ctx, &types.SubscribeInput{User: "amina", PlanID: monthly.ID}); err != nil {
		t.Fatalf("subscribe monthly: %v", err)
	}

	if _, err := subs.Subscribe(ctx, &types.SubscribeInput{User: "amina", PlanID: yearly.ID}); err != nil {
		t.Fatalf("subscribe yearly: %v", err)
	}

	current, err := subs.CurrentSubscription(ctx, "amina")
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	if current.PlanID != yearly.ID {
		t.Errorf("current plan = %d, want yearly %d", current.PlanID, yearly.ID)
	}

	if err := subs.CancelSubscription(ctx, "amina"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := subs.CurrentSubscription(ctx, "amina"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("current after cancel = %v, want record not found", err)
	}
}

func TestWalletBalanceAndInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	wallet := service.NewWalletService(market)

	if _, err := wallet.Transact(ctx, &types.WalletTransactInput{
		User: "amina", Amount: 100, Direction: model.WalletCredit,
	}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	if _, err := wallet.Transact(ctx, &types.WalletTransactInput{
		User: "amina", Amount: 30, Direction: model.WalletDebit, Note: "book purchase",
	}); err != nil {
		t.Fatalf("debit: %v", err)
	}

	balance, err := wallet.Balance(ctx, "amina")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}

	if balance != 70 {
		t.Errorf("balance = %v, want 70", balance)
	}

	// 余额不足
	if _, err := wallet.Transact(ctx, &types.WalletTransactInput{
		User: "amina", Amount: 1000, Direction: model.WalletDebit,
	}); !errors.Is(err, service.ErrInsufficientFunds) {
		t.Errorf("overdraft = %v, want ErrInsufficientFunds", err)
	}

	history, err := wallet.History(ctx, "amina", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	if len(history) != 2 {
		t.Errorf("history = %d entries, want 2 (failed debit not recorded)", len(history))
	}

	for _, txn := range history {
		if txn.Reference == "" {
			t.Error("transaction should carry a reference")
		}
	}
}

// TestUserColumnName 钉住用户列名：user 是 PostgreSQL 保留字，
// 裸 SQL 谓词里会解析成 current_user，列必须叫 user_id.
func TestUserColumnName(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&model.WalletTransaction{}, &model.UserSubscription{}, &model.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, m := range []any{&model.WalletTransaction{}, &model.UserSubscription{}, &model.Review{}} {
		if !gdb.Migrator().HasColumn(m, "user_id") {
			t.Errorf("%T should have a user_id column", m)
		}

		if gdb.Migrator().HasColumn(m, "user") {
			t.Errorf("%T should not have a bare user column", m)
		}
	}
}

func TestDashboardOverview(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	books := service.NewBookService(market)
	wallet := service.NewWalletService(market)
	dashboard := service.NewDashboardService(market, 0.3)

	if _, err := books.CreateBook(ctx, &types.BookInput{Title: "Poultry Manual", Status: "published"}); err != nil {
		t.Fatalf("create book: %v", err)
	}

	if _, err := wallet.Transact(ctx, &types.WalletTransactInput{
		User: "amina", Amount: 200, Direction: model.WalletCredit,
	}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	if _, err := wallet.Transact(ctx, &types.WalletTransactInput{
		User: "amina", Amount: 100, Direction: model.WalletDebit,
	}); err != nil {
		t.Fatalf("debit: %v", err)
	}

	overview, err := dashboard.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.Books != 1 {
		t.Errorf("books = %d, want 1", overview.Books)
	}

	if overview.GrossRevenue != 100 {
		t.Errorf("gross = %v, want 100", overview.GrossRevenue)
	}

	if overview.NetRevenue != 70 {
		t.Errorf("net = %v, want 70 (30%% commission)", overview.NetRevenue)
	}
}

func TestCurriculumListFiltersAndDefaults(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	curriculum := service.NewCurriculumService(market)

	created, err := curriculum.CreateCurriculum(ctx, &types.CurriculumInput{
		Title: "Maize Farming Basics", State: "KA", StateName: "Karnataka", Grade: "8",
	})
	if err != nil {
		t.Fatalf("create curriculum: %v", err)
	}

	if created.Language != "English" {
		t.Errorf("language = %q, want English default", created.Language)
	}

	if created.Status != model.CurriculumStatusActive {
		t.Errorf("status = %q, want active default", created.Status)
	}

	if _, err := curriculum.CreateCurriculum(ctx, &types.CurriculumInput{
		Title: "Paddy Cultivation", State: "TN", Status: model.CurriculumStatusInactive,
	}); err != nil {
		t.Fatalf("create inactive curriculum: %v", err)
	}

	// 默认只列启用的资料
	resp, err := curriculum.ListCurriculums(ctx, &types.ListCurriculumQuery{})
	if err != nil {
		t.Fatalf("list curriculums: %v", err)
	}

	if len(resp.Curriculums) != 1 || resp.Curriculums[0].Title != "Maize Farming Basics" {
		t.Errorf("default list = %d entries, want only the active one", len(resp.Curriculums))
	}

	all, err := curriculum.ListCurriculums(ctx, &types.ListCurriculumQuery{Status: "all"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(all.Curriculums) != 2 {
		t.Errorf("all = %d entries, want 2", len(all.Curriculums))
	}

	byState, err := curriculum.ListCurriculums(ctx, &types.ListCurriculumQuery{State: "TN", Status: "all"})
	if err != nil {
		t.Fatalf("list by state: %v", err)
	}

	if len(byState.Curriculums) != 1 || byState.Curriculums[0].State != "TN" {
		t.Errorf("state filter returned %d entries", len(byState.Curriculums))
	}

	if err := curriculum.DeleteCurriculum(ctx, created.ID); err != nil {
		t.Fatalf("delete curriculum: %v", err)
	}

	if _, err := curriculum.GetCurriculum(ctx, created.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("get deleted = %v, want ErrRecordNotFound", err)
	}
}

func TestWebsiteContentUpsert(t *testing.T) {
	ctx := context.Background()
	market := newTestMarket(t)
	website := service.NewWebsiteContentService(market)

	// 未配置时返回内置默认值
	content, err := website.GetContent(ctx)
	if err != nil {
		t.Fatalf("get default content: %v", err)
	}

	if content.ID != 0 || content.LogoText == "" {
		t.Errorf("default content = id %d, logo %q", content.ID, content.LogoText)
	}

	first, err := website.UpsertContent(ctx, &model.WebsiteContent{
		LogoText:        "Agrivault",
		HeroTitle:       "Grow smarter",
		FeaturedBookIDs: []uint{1, 2},
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := website.UpsertContent(ctx, &model.WebsiteContent{
		LogoText:  "Agrivault",
		HeroTitle: "Grow even smarter",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	// 整表只有一行，覆盖而不是追加
	if second.ID != first.ID {
		t.Errorf("second upsert id = %d, want %d", second.ID, first.ID)
	}

	loaded, err := website.GetContent(ctx)
	if err != nil {
		t.Fatalf("get content: %v", err)
	}

	if loaded.HeroTitle != "Grow even smarter" {
		t.Errorf("hero title = %q, want updated value", loaded.HeroTitle)
	}
}
