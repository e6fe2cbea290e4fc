package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/foodgram/internal/recipe/domain"
	"github.com/tair/foodgram/internal/recipe/shoppinglist"
	"github.com/tair/foodgram/internal/recipe/usecase/command"
	"github.com/tair/foodgram/internal/recipe/usecase/query"
	userdomain "github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/httpx"
	"github.com/tair/foodgram/pkg/metrics"
)

// Options carries the tunables of the recipe endpoints
type Options struct {
	Limits       domain.Limits
	PageSize     int
	MaxPageSize  int
	ShortLinkTTL time.Duration
	PublicURL    string // origin of generated short links
	FrontendURL  string // origin short links redirect to; empty keeps the redirect relative
}

// Repositories groups the storage the recipe endpoints read and write
type Repositories struct {
	Recipes     domain.RecipeRepository
	Relations   domain.RelationStore
	Ingredients domain.IngredientRepository
	Tags        domain.TagRepository
	Users       userdomain.UserRepository
	Subs        userdomain.SubscriptionRepository
	Cache       domain.ShortLinkCache
}

// RecipeHandler handles HTTP requests for recipes, the catalogs and short links
type RecipeHandler struct {
	// Command handlers
	createHandler   *command.CreateRecipeHandler
	updateHandler   *command.UpdateRecipeHandler
	deleteHandler   *command.DeleteRecipeHandler
	relationHandler *command.RelationHandler
	catalogCommands *command.CatalogHandler

	// Query handlers
	recipesHandler  *query.RecipesHandler
	catalogQueries  *query.CatalogHandler
	shoppingHandler *query.ShoppingListHandler
	linkHandler     *query.ShortLinkHandler

	auth        *httpx.Auth
	metrics     *metrics.Metrics
	pageSize    int
	maxPageSize int
	frontendURL string
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(
	repos Repositories,
	links command.LinkGenerator,
	tokens httpx.TokenValidator,
	publisher command.EventPublisher,
	m *metrics.Metrics,
	opts Options,
) *RecipeHandler {
	return &RecipeHandler{
		createHandler:   command.NewCreateRecipeHandler(repos.Recipes, repos.Ingredients, repos.Tags, links, opts.Limits, publisher),
		updateHandler:   command.NewUpdateRecipeHandler(repos.Recipes, repos.Ingredients, repos.Tags, opts.Limits, publisher),
		deleteHandler:   command.NewDeleteRecipeHandler(repos.Recipes, repos.Cache, publisher),
		relationHandler: command.NewRelationHandler(repos.Recipes, repos.Relations, publisher),
		catalogCommands: command.NewCatalogHandler(repos.Ingredients, repos.Tags),
		recipesHandler:  query.NewRecipesHandler(repos.Recipes, repos.Relations, repos.Subs),
		catalogQueries:  query.NewCatalogHandler(repos.Ingredients, repos.Tags),
		shoppingHandler: query.NewShoppingListHandler(repos.Users, repos.Relations, m),
		linkHandler:     query.NewShortLinkHandler(repos.Recipes, repos.Cache, opts.ShortLinkTTL, opts.PublicURL, m),
		auth:            httpx.NewAuth(tokens),
		metrics:         m,
		pageSize:        opts.PageSize,
		maxPageSize:     opts.MaxPageSize,
		frontendURL:     strings.TrimRight(opts.FrontendURL, "/"),
	}
}

// ListTags handles GET /tags/
func (h *RecipeHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.catalogQueries.Tags(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, tags)
}

// GetTag handles GET /tags/{id}/
func (h *RecipeHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	tag, err := h.catalogQueries.Tag(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, tag)
}

// CreateTag handles POST /tags/
func (h *RecipeHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateTagCommand
	if err := httpx.DecodeJSON(r, &cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	cmd.Actor = auth.ActorFrom(r.Context())

	tag, err := h.catalogCommands.CreateTag(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, tag)
}

// ListIngredients handles GET /ingredients/?name=
func (h *RecipeHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.catalogQueries.Ingredients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, ingredients)
}

// GetIngredient handles GET /ingredients/{id}/
func (h *RecipeHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	ingredient, err := h.catalogQueries.Ingredient(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, ingredient)
}

// CreateIngredient handles POST /ingredients/
func (h *RecipeHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateIngredientCommand
	if err := httpx.DecodeJSON(r, &cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	cmd.Actor = auth.ActorFrom(r.Context())

	ingredient, err := h.catalogCommands.CreateIngredient(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, ingredient)
}

// listQuery parses the recipe list filters
func listQuery(r *http.Request) (query.ListRecipesQuery, error) {
	params := r.URL.Query()
	q := query.ListRecipesQuery{Viewer: auth.ActorFrom(r.Context())}

	for _, slug := range params["tags"] {
		if slug = strings.TrimSpace(slug); slug != "" {
			q.TagSlugs = append(q.TagSlugs, slug)
		}
	}
	if raw := params.Get("author"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return q, errs.ValidationField("author", "author must be a user id")
		}
		q.AuthorID = uint(id)
	}

	var err error
	if q.Favorited, err = flag(params.Get("is_favorited"), "is_favorited"); err != nil {
		return q, err
	}
	if q.InShoppingCart, err = flag(params.Get("is_in_shopping_cart"), "is_in_shopping_cart"); err != nil {
		return q, err
	}
	return q, nil
}

func flag(raw, name string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.ValidationField(name, "%s must be a boolean", name)
	}
	return v, nil
}

// ListRecipes handles GET /recipes/
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	p, err := httpx.ParsePagination(r, h.pageSize, h.maxPageSize)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	q, err := listQuery(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	q.Limit, q.Offset = p.Limit, p.Offset()

	res, err := h.recipesHandler.List(r.Context(), q)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := p.Within(res.Total); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, httpx.NewPage(r, p, res.Total, res.Recipes))
}

// GetRecipe handles GET /recipes/{id}/
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	h.respondRecipe(w, r, http.StatusOK, id)
}

func (h *RecipeHandler) respondRecipe(w http.ResponseWriter, r *http.Request, status int, id uint) {
	view, err := h.recipesHandler.Get(r.Context(), query.GetRecipeQuery{Viewer: auth.ActorFrom(r.Context()), ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, status, view)
}

// CreateRecipe handles POST /recipes/
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var draft domain.RecipeDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	recipe, err := h.createHandler.Handle(r.Context(), command.CreateRecipeCommand{
		Actor: auth.ActorFrom(r.Context()),
		Draft: draft,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	h.metrics.RecipeCreated()

	h.respondRecipe(w, r, http.StatusCreated, recipe.ID)
}

// UpdateRecipe handles PATCH /recipes/{id}/
func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var patch domain.RecipePatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	recipe, err := h.updateHandler.Handle(r.Context(), command.UpdateRecipeCommand{
		Actor:    auth.ActorFrom(r.Context()),
		RecipeID: id,
		Patch:    patch,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	h.respondRecipe(w, r, http.StatusOK, recipe.ID)
}

// DeleteRecipe handles DELETE /recipes/{id}/
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd := command.DeleteRecipeCommand{Actor: auth.ActorFrom(r.Context()), RecipeID: id}
	if err := h.deleteHandler.Handle(r.Context(), cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondNoContent(w)
}

// relationCommand reads the recipe id and binds it to kind
func relationCommand(r *http.Request, kind domain.RelationKind) (command.RelationCommand, error) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		return command.RelationCommand{}, err
	}
	return command.RelationCommand{Actor: auth.ActorFrom(r.Context()), Kind: kind, RecipeID: id}, nil
}

// addRelation handles POST /recipes/{id}/favorite/ and /recipes/{id}/shopping_cart/
func (h *RecipeHandler) addRelation(kind domain.RelationKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := relationCommand(r, kind)
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}

		summary, err := h.relationHandler.Add(r.Context(), cmd)
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}
		h.metrics.RelationChanged(string(kind), "add")

		httpx.RespondJSON(w, http.StatusCreated, summary)
	}
}

// removeRelation handles DELETE /recipes/{id}/favorite/ and /recipes/{id}/shopping_cart/
func (h *RecipeHandler) removeRelation(kind domain.RelationKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := relationCommand(r, kind)
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}

		if err := h.relationHandler.Remove(r.Context(), cmd); err != nil {
			httpx.RespondError(w, r, err)
			return
		}
		h.metrics.RelationChanged(string(kind), "remove")

		httpx.RespondNoContent(w)
	}
}

// DownloadShoppingCart handles GET /recipes/download_shopping_cart/
func (h *RecipeHandler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	list, err := h.shoppingHandler.Handle(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", shoppinglist.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+list.Filename()+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(list.Render()))
}

// GetLink handles GET /recipes/{id}/get-link/
func (h *RecipeHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	link, err := h.linkHandler.Link(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, link)
}

// ResolveShortLink handles GET /s/{token}/
func (h *RecipeHandler) ResolveShortLink(w http.ResponseWriter, r *http.Request) {
	id, err := h.linkHandler.Resolve(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	target := h.frontendURL + "/recipes/" + strconv.FormatUint(uint64(id), 10) + "/"
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *RecipeHandler) route(router *mux.Router, path, method string, handler http.HandlerFunc) {
	router.HandleFunc(path, httpx.Instrument(h.metrics, path, handler)).Methods(method)
}

// RegisterRoutes registers the catalog and recipe routes on the /api subrouter
func (h *RecipeHandler) RegisterRoutes(router *mux.Router) {
	// Catalogs
	h.route(router, "/tags/", http.MethodGet, h.ListTags)
	h.route(router, "/tags/", http.MethodPost, h.auth.RequireAdmin(h.CreateTag))
	h.route(router, "/tags/{id:[0-9]+}/", http.MethodGet, h.GetTag)
	h.route(router, "/ingredients/", http.MethodGet, h.ListIngredients)
	h.route(router, "/ingredients/", http.MethodPost, h.auth.RequireAdmin(h.CreateIngredient))
	h.route(router, "/ingredients/{id:[0-9]+}/", http.MethodGet, h.GetIngredient)

	// Recipes; fixed paths go before /recipes/{id}/
	h.route(router, "/recipes/", http.MethodGet, h.auth.OptionalAuth(h.ListRecipes))
	h.route(router, "/recipes/", http.MethodPost, h.auth.RequireAuth(h.CreateRecipe))
	h.route(router, "/recipes/download_shopping_cart/", http.MethodGet, h.auth.RequireAuth(h.DownloadShoppingCart))
	h.route(router, "/recipes/{id:[0-9]+}/", http.MethodGet, h.auth.OptionalAuth(h.GetRecipe))
	h.route(router, "/recipes/{id:[0-9]+}/", http.MethodPatch, h.auth.RequireAuth(h.UpdateRecipe))
	h.route(router, "/recipes/{id:[0-9]+}/", http.MethodDelete, h.auth.RequireAuth(h.DeleteRecipe))
	h.route(router, "/recipes/{id:[0-9]+}/get-link/", http.MethodGet, h.GetLink)

	for kind, path := range map[domain.RelationKind]string{
		domain.Favorite:     "/recipes/{id:[0-9]+}/favorite/",
		domain.ShoppingCart: "/recipes/{id:[0-9]+}/shopping_cart/",
	} {
		h.route(router, path, http.MethodPost, h.auth.RequireAuth(h.addRelation(kind)))
		h.route(router, path, http.MethodDelete, h.auth.RequireAuth(h.removeRelation(kind)))
	}
}

// RegisterRedirect registers the short link redirect on the root router
func (h *RecipeHandler) RegisterRedirect(router *mux.Router) {
	h.route(router, "/s/{token:[0-9a-z]+}/", http.MethodGet, h.ResolveShortLink)
}
