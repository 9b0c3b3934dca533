package shopify

// Admin GraphQL documents used by the app

const shopProfileQuery = `query shopProfile {
  shop {
    email
    shopOwnerName
    currencyCode
  }
}`

const channelContextQuery = `query channelContext {
  shop {
    currencyCode
  }
  locations(first: 1) {
    edges {
      node {
        id
        address {
          countryCode
        }
      }
    }
  }
  currentAppInstallation {
    accessScopes {
      handle
    }
  }
}`

const productCreateMutation = `mutation productCreate($product: ProductCreateInput!) {
  productCreate(product: $product) {
    product {
      id
      title
      variants(first: 1) {
        edges {
          node {
            id
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const variantsBulkUpdateMutation = `mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
      price
    }
    userErrors {
      field
      message
    }
  }
}`

const orderCreateMutation = `mutation orderCreate($order: OrderCreateOrderInput!) {
  orderCreate(order: $order) {
    order {
      id
      name
    }
    userErrors {
      field
      message
    }
  }
}`

const webhookSubscriptionCreateMutation = `mutation webhookSubscriptionCreate($topic: WebhookSubscriptionTopic!, $webhookSubscription: WebhookSubscriptionInput!) {
  webhookSubscriptionCreate(topic: $topic, webhookSubscription: $webhookSubscription) {
    webhookSubscription {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

const webhookSubscriptionsQuery = `query webhookSubscriptions {
  webhookSubscriptions(first: 50) {
    edges {
      node {
        id
        topic
        format
        createdAt
        updatedAt
        endpoint {
          __typename
          ... on WebhookHttpEndpoint {
            callbackUrl
          }
        }
      }
    }
  }
}`
