package client

const pageSize = 100

const categoriesQuery = `
query categories($first: Int!, $after: String) {
	categories(first: $first, after: $after) {
		pageInfo { hasNextPage endCursor }
		edges { node { id name parent { id } } }
	}
}`

const categoriesByNameQuery = `
query categoriesByName($search: String!, $first: Int!, $after: String) {
	categories(first: $first, after: $after, filter: {search: $search}) {
		pageInfo { hasNextPage endCursor }
		edges { node { id name } }
	}
}`

const categoryCreateMutation = `
mutation categoryCreate($input: CategoryInput!, $parent: ID) {
	categoryCreate(input: $input, parent: $parent) {
		category { id }
		productErrors { field message code }
	}
}`

const productsBySKUQuery = `
query productsBySku($search: String!, $first: Int!, $after: String) {
	products(first: $first, after: $after, filter: {search: $search}) {
		pageInfo { hasNextPage endCursor }
		edges { node { id variants { sku } } }
	}
}`

const productIDsQuery = `
query productIds($first: Int!, $after: String) {
	products(first: $first, after: $after) {
		pageInfo { hasNextPage endCursor }
		edges { node { id } }
	}
}`

const productCreateMutation = `
mutation productCreate($input: ProductCreateInput!) {
	productCreate(input: $input) {
		product { id }
		productErrors { field message code }
	}
}`

const productUpdateMutation = `
mutation productUpdate($id: ID!, $input: ProductInput!) {
	productUpdate(id: $id, input: $input) {
		product { id name }
		productErrors { field message code }
	}
}`

const productBulkDeleteMutation = `
mutation productBulkDelete($ids: [ID]!) {
	productBulkDelete(ids: $ids) {
		count
		productErrors { field message code }
	}
}`

const productTypesByNameQuery = `
query productTypesByName($search: String!, $first: Int!, $after: String) {
	productTypes(first: $first, after: $after, filter: {search: $search}) {
		pageInfo { hasNextPage endCursor }
		edges { node { id name } }
	}
}`

const productTypeCreateMutation = `
mutation productTypeCreate($input: ProductTypeInput!) {
	productTypeCreate(input: $input) {
		productType { id }
		productErrors { field message code }
	}
}`

const productQuery = `
query product($id: ID!) {
	product(id: $id) {
		id
		name
		description
		isPublished
		chargeTaxes
		seoTitle
		seoDescription
		productType { id name }
		category { id name }
		basePrice { amount currency }
		weight { unit value }
		variants { id sku name }
	}
}`
