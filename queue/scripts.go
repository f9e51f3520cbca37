package queue

import goredis "github.com/redis/go-redis/v9"

// popScript atomically moves the lowest-scored ready job into the leased
// set with the given lease deadline, returning its id.
// KEYS: ready, leased. ARGV: lease deadline (unix ms).
var popScript = goredis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], 0, 0)
if #ids == 0 then
  return false
end
local id = ids[1]
redis.call('ZREM', KEYS[1], id)
redis.call('ZADD', KEYS[2], ARGV[1], id)
return id
`)

// moveDueScript moves every member of src whose score is <= now back to
// the ready set under its original priority score. Used both to promote
// delayed retries and to reclaim expired leases.
// KEYS: src, ready, scores hash. ARGV: now (unix ms).
var moveDueScript = goredis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(due) do
  local score = redis.call('HGET', KEYS[3], id)
  if score then
    redis.call('ZADD', KEYS[2], score, id)
  end
  redis.call('ZREM', KEYS[1], id)
end
return #due
`)
