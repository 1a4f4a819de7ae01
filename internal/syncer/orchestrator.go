package syncer

import (
	"sync"

	"catsync/internal/catalog"
	"catsync/internal/events"
	"catsync/internal/logger"
	"catsync/internal/models"
	"catsync/internal/services/woocommerce"

	"github.com/pkg/errors"
)

type State string

const (
	StateIdle                State = "idle"
	StateTestingConnection   State = "testing_connection"
	StateWiping              State = "wiping"
	StateImportingCategories State = "importing_categories"
	StateImportingProducts   State = "importing_products"
	StateRecomputingCounts   State = "recomputing_counts"
	StateDone                State = "done"
	StateFailed              State = "failed"
)

// Counters are the running import tallies. Observational only, they never
// gate control flow.
type Counters struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Variations int `json:"variations"`
}

// Orchestrator drives a full wipe-and-reimport of the WooCommerce catalog
// into the local store. Execution is sequential: one page, one entity at a
// time. Any future parallel page fetching must keep all categories committed
// before the first product-category link is attempted.
type Orchestrator struct {
	client      *woocommerce.Client
	transformer *woocommerce.Transformer
	writer      *catalog.Writer
	publisher   *events.Publisher
	logger      *logger.Logger
	perPage     int

	mu       sync.Mutex
	state    State
	counters Counters
}

func NewOrchestrator(client *woocommerce.Client, writer *catalog.Writer, publisher *events.Publisher, logger *logger.Logger, perPage int) *Orchestrator {
	if perPage <= 0 {
		perPage = 100
	}
	return &Orchestrator{
		client:      client,
		transformer: woocommerce.NewTransformer(),
		writer:      writer,
		publisher:   publisher,
		logger:      logger,
		perPage:     perPage,
		state:       StateIdle,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Counters() Counters {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counters
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) fail(err error) error {
	o.publisher.Publish(events.TypeSyncFailed, map[string]interface{}{
		"error": err.Error(),
	})
	return err
}

// Run executes a full sync. The connection probe runs before anything
// destructive; once the wipe has happened, individual entity failures are
// logged and skipped rather than aborting the run.
func (o *Orchestrator) Run() error {
	o.mu.Lock()
	o.counters = Counters{}
	o.mu.Unlock()

	o.setState(StateTestingConnection)
	o.logger.Info("Testing WooCommerce connection...")
	if _, err := o.client.ListProducts(1, 1, "publish"); err != nil {
		o.setState(StateFailed)
		return errors.Wrap(err, "connection test failed")
	}

	o.publisher.Publish(events.TypeSyncStarted, nil)

	o.setState(StateWiping)
	o.logger.Info("Wiping local catalog...")
	if err := o.writer.WipeCatalog(); err != nil {
		return o.fail(errors.Wrap(err, "failed to wipe catalog"))
	}

	o.setState(StateImportingCategories)
	categoryMap, err := o.importCategories()
	if err != nil {
		return o.fail(errors.Wrap(err, "failed in category import"))
	}

	o.setState(StateImportingProducts)
	if err := o.importProducts(categoryMap); err != nil {
		return o.fail(errors.Wrap(err, "failed in product import"))
	}

	o.setState(StateRecomputingCounts)
	o.logger.Info("Recomputing category product counts...")
	if err := o.writer.RecomputeCategoryCounts(); err != nil {
		return o.fail(errors.Wrap(err, "failed to recompute category counts"))
	}

	o.setState(StateDone)
	counters := o.Counters()
	o.publisher.Publish(events.TypeSyncCompleted, map[string]interface{}{
		"categories": counters.Categories,
		"products":   counters.Products,
		"variations": counters.Variations,
	})
	o.logger.Info("Sync complete: %d categories, %d products, %d variations",
		counters.Categories, counters.Products, counters.Variations)

	return nil
}

// importCategories pages through the remote categories and returns the
// remote-id to local-id map consulted during product import. A category that
// fails to persist is skipped; products referencing it simply end up without
// that link.
func (o *Orchestrator) importCategories() (map[int64]string, error) {
	categoryMap := make(map[int64]string)

	for page := 1; ; page++ {
		wcCategories, err := o.client.ListCategories(page, o.perPage)
		if err != nil {
			return nil, err
		}
		if len(wcCategories) == 0 {
			break
		}

		for i := range wcCategories {
			wcCategory := &wcCategories[i]
			category := o.transformer.TransformCategory(wcCategory)

			localID, err := o.writer.CreateCategory(category)
			if err != nil {
				o.logger.Warn("Skipping category %q: %v", wcCategory.Name, err)
				continue
			}

			categoryMap[wcCategory.ID] = localID
			o.mu.Lock()
			o.counters.Categories++
			o.mu.Unlock()
			o.publisher.Publish(events.TypeCategoryImported, map[string]interface{}{
				"woo_id": wcCategory.ID,
				"name":   wcCategory.Name,
			})
			o.logger.Debug("Imported category %q", wcCategory.Name)
		}

		if len(wcCategories) < o.perPage {
			break
		}
	}

	return categoryMap, nil
}

func (o *Orchestrator) importProducts(categoryMap map[int64]string) error {
	for page := 1; ; page++ {
		wcProducts, err := o.client.ListProducts(page, o.perPage, "publish")
		if err != nil {
			return err
		}
		if len(wcProducts) == 0 {
			break
		}

		for i := range wcProducts {
			o.importProduct(&wcProducts[i], categoryMap)
		}

		if len(wcProducts) < o.perPage {
			break
		}
	}

	return nil
}

// importProduct persists one product and its children. Failures are logged
// and the product (or the failed child batch) is skipped; the rest of the run
// continues. A variation failure never rolls back the already-written product.
func (o *Orchestrator) importProduct(wcProduct *woocommerce.Product, categoryMap map[int64]string) {
	product, images, attributes := o.transformer.TransformProduct(wcProduct)

	productID, err := o.writer.CreateProduct(product)
	if err != nil {
		o.logger.Warn("Skipping product %q: %v", wcProduct.Name, err)
		return
	}

	if err := o.writer.CreateImages(productID, images); err != nil {
		o.logger.Warn("Failed to write images for product %q: %v", wcProduct.Name, err)
		return
	}
	if err := o.writer.CreateAttributes(productID, attributes); err != nil {
		o.logger.Warn("Failed to write attributes for product %q: %v", wcProduct.Name, err)
		return
	}

	for _, ref := range wcProduct.Categories {
		categoryID, ok := categoryMap[ref.ID]
		if !ok {
			// Expected when the category itself failed to import; already
			// logged there.
			continue
		}
		if err := o.writer.LinkCategory(productID, categoryID); err != nil {
			o.logger.Warn("Failed to link product %q to category %q: %v", wcProduct.Name, ref.Name, err)
		}
	}

	o.mu.Lock()
	o.counters.Products++
	o.mu.Unlock()
	o.publisher.Publish(events.TypeProductImported, map[string]interface{}{
		"woo_id": wcProduct.ID,
		"name":   wcProduct.Name,
	})
	o.logger.Debug("Imported product %q", wcProduct.Name)

	if wcProduct.Type == "variable" && len(wcProduct.Variations) > 0 {
		o.importVariations(wcProduct, productID)
	}
}

func (o *Orchestrator) importVariations(wcProduct *woocommerce.Product, productID string) {
	wcVariations, err := o.client.ListVariations(wcProduct.ID, o.perPage)
	if err != nil {
		o.logger.Warn("Failed to fetch variations for product %q: %v", wcProduct.Name, err)
		return
	}

	variations := make([]models.ProductVariation, 0, len(wcVariations))
	for i := range wcVariations {
		variation, err := o.transformer.TransformVariation(&wcVariations[i], i)
		if err != nil {
			o.logger.Warn("Skipping variation %d of product %q: %v", wcVariations[i].ID, wcProduct.Name, err)
			continue
		}
		variations = append(variations, *variation)
	}

	if err := o.writer.CreateVariations(productID, variations); err != nil {
		o.logger.Warn("Failed to write variations for product %q: %v", wcProduct.Name, err)
		return
	}

	o.mu.Lock()
	o.counters.Variations += len(variations)
	o.mu.Unlock()
}

// RunOne imports a single remote product (and its variations) without wiping
// the catalog. Used by the one-product verification command.
func (o *Orchestrator) RunOne(remoteProductID int64) error {
	wcProduct, err := o.client.GetProduct(remoteProductID)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch product %d", remoteProductID)
	}

	// No category phase ran, so links are resolved against whatever
	// categories already exist locally, matched by slug.
	categoryMap := make(map[int64]string)
	for _, ref := range wcProduct.Categories {
		var category models.Category
		err := o.writer.DB().Where("slug = ?", ref.Slug).First(&category).Error
		if err == nil {
			categoryMap[ref.ID] = category.ID
		}
	}

	o.importProduct(wcProduct, categoryMap)
	return nil
}
