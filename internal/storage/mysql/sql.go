package mysql

const upsertActivitySQL = `
INSERT INTO activities
  (id, category, duration, group_size, image, title, description, highlights, prices, position)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  category    = VALUES(category),
  duration    = VALUES(duration),
  group_size  = VALUES(group_size),
  image       = VALUES(image),
  title       = VALUES(title),
  description = VALUES(description),
  highlights  = VALUES(highlights),
  prices      = VALUES(prices),
  position    = VALUES(position),
  updated_at  = CURRENT_TIMESTAMP
`

const deleteActivitySQL = `DELETE FROM activities WHERE id = ?`

const insertMissSQL = `
INSERT INTO import_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE http_status = VALUES(http_status), seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const activityColumns = `
  id, category, duration, group_size, image,
  title, description, highlights, prices,
  position, updated_at`

const getActivitySQL = `SELECT` + activityColumns + `
FROM activities
WHERE id = ?
`

// Catalog order is the admin-controlled position, then id for stability.
const listActivitiesSQL = `SELECT` + activityColumns + `
FROM activities
ORDER BY position, id
LIMIT ?
`

const listActivitiesByCategorySQL = `SELECT` + activityColumns + `
FROM activities
WHERE category = ?
ORDER BY position, id
LIMIT ?
`
