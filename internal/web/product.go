package web

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"productadmin/internal/files"
	"productadmin/internal/service"
	"productadmin/internal/textutil"
	"productadmin/internal/viewmodels"
)

const (
	productListPath = "/Admin/Product"
	maxTake         = 100
)

// ProductHandler — админка продуктов: список, создание, редактирование, удаление
type ProductHandler struct {
	products    *service.ProductService
	categories  *service.CategoryService
	defaultTake int
	maxImageKB  int64
}

func NewProductHandler(products *service.ProductService, categories *service.CategoryService, defaultTake int, maxImageKB int64) *ProductHandler {
	if defaultTake < 1 {
		defaultTake = 4
	}
	return &ProductHandler{products: products, categories: categories, defaultTake: defaultTake, maxImageKB: maxImageKB}
}

func (h *ProductHandler) Routes(r gin.IRoutes) {
	r.GET(productListPath, h.Index)
	r.GET(productListPath+"/Create", h.Create)
	r.POST(productListPath+"/Create", h.CreatePost)
	for _, suffix := range []string{"", "/:id"} {
		r.GET(productListPath+"/Detail"+suffix, h.Detail)
		r.GET(productListPath+"/Delete"+suffix, h.Delete)
		r.POST(productListPath+"/Delete"+suffix, h.DeletePost)
		r.GET(productListPath+"/Edit"+suffix, h.Edit)
		r.POST(productListPath+"/Edit"+suffix, h.EditPost)
	}
}

func (h *ProductHandler) Index(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	take, err := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(h.defaultTake)))
	if err != nil || take < 1 {
		take = h.defaultTake
	}
	if take > maxTake {
		take = maxTake
	}

	ctx := c.Request.Context()
	total, err := h.products.Count(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	// страница за концом списка превращается в последнюю
	pages := service.PageCount(total, take)
	if page > pages {
		page = max(pages, 1)
	}
	products, err := h.products.Paginated(ctx, page, take)
	if err != nil {
		fail(c, err)
		return
	}

	paginated := viewmodels.NewPaginate(viewmodels.MapProductList(products), page, pages, take)
	c.HTML(http.StatusOK, "product_index.tmpl", withUser(c, ViewData{"Page": paginated}))
}

func (h *ProductHandler) Create(c *gin.Context) {
	h.renderForm(c, "product_create.tmpl", viewmodels.ProductCreateVM{}, 0, nil)
}

func (h *ProductHandler) CreatePost(c *gin.Context) {
	var form viewmodels.ProductCreateVM
	errs := viewmodels.FieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		bindErrors(err, errs)
	}
	if len(form.Photos) == 0 {
		errs.Add("photos", "Select at least one image")
	}
	h.checkPhotos(form.Photos, errs)
	price := parsePrice(form.Price, errs)
	if ok := h.checkCategory(c, form.CategoryID, errs); !ok {
		return
	}
	if errs.Any() {
		h.renderForm(c, "product_create.tmpl", form, form.CategoryID, errs)
		return
	}

	_, err := h.products.Create(c.Request.Context(), service.ProductInput{
		Name:        strings.TrimSpace(form.Name),
		Description: form.Description,
		Price:       price,
		Count:       form.Count,
		CategoryID:  form.CategoryID,
	}, form.Photos)
	if err != nil {
		fail(c, err)
		return
	}
	flash(c, "Product created")
	c.Redirect(http.StatusFound, productListPath)
}

func (h *ProductHandler) Detail(c *gin.Context) {
	h.showProduct(c, "product_detail.tmpl")
}

func (h *ProductHandler) Delete(c *gin.Context) {
	h.showProduct(c, "product_delete.tmpl")
}

func (h *ProductHandler) showProduct(c *gin.Context, name string) {
	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}
	p, err := h.products.FullByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.HTML(http.StatusOK, name, withUser(c, ViewData{
		"Product": p,
		"Desc":    textutil.StripTags(p.Description),
	}))
}

func (h *ProductHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Product deleted")
	c.Redirect(http.StatusFound, productListPath)
}

func (h *ProductHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}
	p, err := h.products.FullByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	h.renderForm(c, "product_edit.tmpl", viewmodels.NewProductEditVM(p), p.CategoryID, nil)
}

func (h *ProductHandler) EditPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}
	ctx := c.Request.Context()
	// картинки всегда берём из базы, а не из формы
	current, err := h.products.FullByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}

	var form viewmodels.ProductEditVM
	errs := viewmodels.FieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		bindErrors(err, errs)
	}
	form.ID = id
	form.Images = current.Images
	h.checkPhotos(form.Photos, errs)
	price := parsePrice(form.Price, errs)
	if ok := h.checkCategory(c, form.CategoryID, errs); !ok {
		return
	}
	if errs.Any() {
		h.renderForm(c, "product_edit.tmpl", form, form.CategoryID, errs)
		return
	}

	_, err = h.products.Update(ctx, id, service.ProductInput{
		Name:        strings.TrimSpace(form.Name),
		Description: form.Description,
		Price:       price,
		CategoryID:  form.CategoryID,
	}, form.Photos)
	if err != nil {
		fail(c, err)
		return
	}
	flash(c, "Product updated")
	c.Redirect(http.StatusFound, productListPath)
}

// checkPhotos — все файлы должны быть картинками и не больше maxImageKB
func (h *ProductHandler) checkPhotos(photos []*multipart.FileHeader, errs viewmodels.FieldErrors) {
	for _, photo := range photos {
		if !files.CheckFileType(photo, "image/") {
			errs.Add("photos", "File type must be image")
			return
		}
		if files.CheckFileSize(photo, h.maxImageKB) {
			errs.Add("photos", "Image size must be max "+strconv.FormatInt(h.maxImageKB, 10)+"kb")
			return
		}
	}
}

// checkCategory возвращает false, если ответ уже отправлен (ошибка базы)
func (h *ProductHandler) checkCategory(c *gin.Context, id uint, errs viewmodels.FieldErrors) bool {
	if id == 0 {
		return true
	}
	exists, err := h.categories.Exists(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return false
	}
	if !exists {
		errs.Add("categoryId", "Category not found")
	}
	return true
}

func parsePrice(raw string, errs viewmodels.FieldErrors) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		errs.Add("price", "Price must be a number")
		return decimal.Zero
	}
	if price.IsNegative() {
		errs.Add("price", "Price must not be negative")
	}
	return price.Round(2)
}

// renderForm — форма создания/редактирования со списком категорий.
// Ошибки валидации отдаём с 200, как обычную перерисовку формы.
func (h *ProductHandler) renderForm(c *gin.Context, name string, form any, selected uint, errs viewmodels.FieldErrors) {
	categories, err := h.categories.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.HTML(http.StatusOK, name, withUser(c, ViewData{
		"Form":       form,
		"Categories": viewmodels.CategoryOptions(categories, selected),
		"Errors":     errs,
	}))
}
