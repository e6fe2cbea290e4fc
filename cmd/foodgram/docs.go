package main

// @title Foodgram API
// @version 1.0
// @description Recipe sharing service: recipes, favorites, shopping cart, subscriptions and short links
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" or "Token" followed by a space and the JWT token.

// @tag.name Users
// @tag.description Accounts, profiles and tokens

// @tag.name Subscriptions
// @tag.description Following other authors

// @tag.name Tags
// @tag.description Tag catalog

// @tag.name Ingredients
// @tag.description Ingredient catalog

// @tag.name Recipes
// @tag.description Recipe CRUD and short links

// @tag.name Favorites
// @tag.description Favorite recipes

// @tag.name Shopping cart
// @tag.description Shopping cart and shopping list download
