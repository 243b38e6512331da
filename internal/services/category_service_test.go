package services

import (
	"testing"

	"cardmile/internal/models"
	"cardmile/internal/pagination"
	"cardmile/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Dining", "utensils", "#ff8800", false)
		testutil.AssertNoError(t, err)

		if category.Name != "Dining" {
			t.Errorf("expected name Dining, got %s", category.Name)
		}
		if category.Color != "#ff8800" {
			t.Errorf("expected color #ff8800, got %s", category.Color)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "", "utensils", "#ff8800", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Dining", "utensils", "#ff8800", false)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Dining", "pizza", "#00ff88", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("same_name_different_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user1.ID, "Dining", "utensils", "#ff8800", false)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user2.ID, "Dining", "utensils", "#ff8800", false)
		testutil.AssertNoError(t, err)
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("ordered_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategoryWithName(t, db, user.ID, "Travel")
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Dining")
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Groceries")

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserCategories(user.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3 categories, got %d", result.TotalItems)
		}
		if result.Data[0].Name != "Dining" {
			t.Errorf("expected Dining first, got %s", result.Data[0].Name)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Dining")

		updated, err := svc.UpdateCategory(user.ID, category.ID, "", "", "#112233")
		testutil.AssertNoError(t, err)

		if updated.Name != "Dining" {
			t.Errorf("expected name to remain Dining, got %s", updated.Name)
		}
		if updated.Color != "#112233" {
			t.Errorf("expected color #112233, got %s", updated.Color)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateCategory(user.ID, "00000000-0000-0000-0000-000000000000", "X", "", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("referenced_by_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 5000)

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("referenced_by_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestBudget(t, db, user.ID, category.ID, 50000)

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})
}
