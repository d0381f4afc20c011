package categoryRepository

const (
	selectCategory = `
		SELECT
			id,
			name,
			description,
			is_active,
			created_at,
			created_by,
			updated_at,
			updated_by,
			is_deleted,
			deleted_at,
			deleted_by
		FROM categories
	`

	queryCreateCategory = `
		INSERT INTO categories (
			id,
			name,
			description,
			is_active,
			created_at,
			created_by
		) VALUES (
			:id,
			:name,
			:description,
			:is_active,
			:created_at,
			:created_by
		)
	`

	queryGetCategoryByID = selectCategory + `
		WHERE id = :id
	`

	queryGetAllCategories = selectCategory + `
		WHERE NOT is_deleted
		ORDER BY name ASC
	`

	pagedCategoryFilter = `
		WHERE NOT is_deleted
		AND (
			:filter = ''
			OR LOWER(name) LIKE :pattern
			OR LOWER(description) LIKE :pattern
		)
	`

	queryGetPagedCategories = selectCategory + pagedCategoryFilter

	queryCountPagedCategories = `
		SELECT COUNT(*)
		FROM categories
	` + pagedCategoryFilter

	queryUpdateCategory = `
		UPDATE categories
		SET
			name = :name,
			description = :description,
			is_active = :is_active,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND NOT is_deleted
	`

	querySoftDeleteCategory = `
		UPDATE categories
		SET
			is_deleted = TRUE,
			deleted_at = :deleted_at,
			deleted_by = :deleted_by
		WHERE id = :id AND NOT is_deleted
	`

	queryRestoreCategory = `
		UPDATE categories
		SET
			is_deleted = FALSE,
			deleted_at = NULL,
			deleted_by = NULL,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND is_deleted
	`

	queryCategoryNameExists = `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE LOWER(name) = LOWER(:name)
			AND NOT is_deleted
			AND id <> :exclude_id
		)
	`
)

// categorySortColumns whitelists the sort keys accepted by the paged listing.
var categorySortColumns = map[string]string{
	"name":      "LOWER(name)",
	"createdAt": "created_at",
}
