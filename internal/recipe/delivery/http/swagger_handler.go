package http

// ListTags godoc
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} domain.Tag
// @Router /tags/ [get]
func (h *RecipeHandler) ListTagsDoc() {}

// GetTag godoc
// @Summary Get tag
// @Tags Tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} domain.Tag
// @Failure 404 {object} httpx.ErrorResponse
// @Router /tags/{id}/ [get]
func (h *RecipeHandler) GetTagDoc() {}

// CreateTag godoc
// @Summary Create tag
// @Tags Tags
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body command.CreateTagCommand true "Tag"
// @Success 201 {object} domain.Tag
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /tags/ [post]
func (h *RecipeHandler) CreateTagDoc() {}

// ListIngredients godoc
// @Summary List ingredients
// @Tags Ingredients
// @Produce json
// @Param name query string false "Case-insensitive name prefix"
// @Success 200 {array} domain.Ingredient
// @Router /ingredients/ [get]
func (h *RecipeHandler) ListIngredientsDoc() {}

// GetIngredient godoc
// @Summary Get ingredient
// @Tags Ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} domain.Ingredient
// @Failure 404 {object} httpx.ErrorResponse
// @Router /ingredients/{id}/ [get]
func (h *RecipeHandler) GetIngredientDoc() {}

// CreateIngredient godoc
// @Summary Create ingredient
// @Tags Ingredients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body command.CreateIngredientCommand true "Ingredient"
// @Success 201 {object} domain.Ingredient
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /ingredients/ [post]
func (h *RecipeHandler) CreateIngredientDoc() {}

// ListRecipes godoc
// @Summary List recipes, newest first
// @Tags Recipes
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param tags query []string false "Tag slugs, any of" collectionFormat(multi)
// @Param author query int false "Author ID"
// @Param is_favorited query bool false "Only the viewer's favorites"
// @Param is_in_shopping_cart query bool false "Only the viewer's shopping cart"
// @Success 200 {object} object{count=int,next=string,previous=string,results=[]domain.RecipeView}
// @Failure 400 {object} httpx.ErrorResponse
// @Router /recipes/ [get]
func (h *RecipeHandler) ListRecipesDoc() {}

// GetRecipe godoc
// @Summary Get recipe
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} domain.RecipeView
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/ [get]
func (h *RecipeHandler) GetRecipeDoc() {}

// CreateRecipe godoc
// @Summary Create recipe
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.RecipeDraft true "Recipe"
// @Success 201 {object} domain.RecipeView
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /recipes/ [post]
func (h *RecipeHandler) CreateRecipeDoc() {}

// UpdateRecipe godoc
// @Summary Update recipe
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body domain.RecipePatch true "Changes; tags and ingredients are required"
// @Success 200 {object} domain.RecipeView
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/ [patch]
func (h *RecipeHandler) UpdateRecipeDoc() {}

// DeleteRecipe godoc
// @Summary Delete recipe
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/ [delete]
func (h *RecipeHandler) DeleteRecipeDoc() {}

// AddFavorite godoc
// @Summary Add recipe to favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} domain.Summary
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/favorite/ [post]
func (h *RecipeHandler) AddFavoriteDoc() {}

// RemoveFavorite godoc
// @Summary Remove recipe from favorites
// @Tags Favorites
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/favorite/ [delete]
func (h *RecipeHandler) RemoveFavoriteDoc() {}

// AddToShoppingCart godoc
// @Summary Add recipe to shopping cart
// @Tags Shopping cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} domain.Summary
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/shopping_cart/ [post]
func (h *RecipeHandler) AddToShoppingCartDoc() {}

// RemoveFromShoppingCart godoc
// @Summary Remove recipe from shopping cart
// @Tags Shopping cart
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/shopping_cart/ [delete]
func (h *RecipeHandler) RemoveFromShoppingCartDoc() {}

// DownloadShoppingCart godoc
// @Summary Download the aggregated shopping list
// @Tags Shopping cart
// @Security BearerAuth
// @Produce plain
// @Success 200 {string} string "Shopping list attachment"
// @Failure 401 {object} httpx.ErrorResponse
// @Router /recipes/download_shopping_cart/ [get]
func (h *RecipeHandler) DownloadShoppingCartDoc() {}

// GetLink godoc
// @Summary Get the recipe short link
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} domain.ShortLinkResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /recipes/{id}/get-link/ [get]
func (h *RecipeHandler) GetLinkDoc() {}

// ResolveShortLink godoc
// @Summary Follow a short link
// @Tags Short links
// @Param token path string true "Short link token"
// @Success 302
// @Failure 404 {object} httpx.ErrorResponse
// @Router /s/{token}/ [get]
func (h *RecipeHandler) ResolveShortLinkDoc() {}
