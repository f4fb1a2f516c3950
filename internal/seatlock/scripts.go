package seatlock

import "github.com/redis/go-redis/v9"

// Lua script for atomic multi-seat lock acquisition - prevents race conditions.
// Either every requested seat gets locked or none do.
const luaAcquireSeats = `
-- KEYS[1..N] = seat lock keys (seat_lock:<show_id>:<seat_id>)
-- ARGV[1] = show_id
-- ARGV[2] = user_id
-- ARGV[3] = hold_id
-- ARGV[4] = ttl_seconds
-- ARGV[5..M] = seat_ids (parallel to KEYS)

local user_id = ARGV[2]
local hold_id = ARGV[3]
local ttl = tonumber(ARGV[4])

-- Check phase: every seat must be free or already owned by this user
for i = 1, #KEYS do
    local existing = redis.call("GET", KEYS[i])
    if existing then
        local owner = string.match(existing, "^([^:]+)")
        if owner ~= user_id then
            -- Seat is locked by someone else, fail with the offending seat
            return {0, ARGV[4 + i]}
        end
    end
end

-- Set phase: lock every seat (refreshes TTL on same-owner re-acquire)
local lock_value = user_id .. ":" .. hold_id
for i = 1, #KEYS do
    redis.call("SET", KEYS[i], lock_value, "EX", ttl)
end

return {1, ttl}
`

// Lua script for atomic seat lock release. Only locks owned by the caller
// are deleted; foreign locks are left untouched.
const luaReleaseSeats = `
-- KEYS[1..N] = seat lock keys (seat_lock:<show_id>:<seat_id>)
-- ARGV[1] = user_id
-- ARGV[2..M] = seat_ids (parallel to KEYS)

local user_id = ARGV[1]
local released = {}

for i = 1, #KEYS do
    local existing = redis.call("GET", KEYS[i])
    if existing then
        local owner = string.match(existing, "^([^:]+)")
        if owner == user_id then
            redis.call("DEL", KEYS[i])
            table.insert(released, ARGV[1 + i])
        end
    end
end

return released
`

var (
	acquireScript = redis.NewScript(luaAcquireSeats)
	releaseScript = redis.NewScript(luaReleaseSeats)
)
